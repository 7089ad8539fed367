package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/apierror"
	"github.com/example/tavola/internal/forms"
	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
)

// ReviewHandler manages customer testimonials.
type ReviewHandler struct {
	repo   repository.ReviewRepository
	schema forms.Schema
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(repo repository.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{
		repo: repo,
		schema: forms.Schema{
			{Name: "user_name", Rules: []forms.Rule{
				forms.Required("name is required"),
				forms.MinLen(2, "name must be at least 2 characters"),
				forms.MaxLen(100, "name must be at most 100 characters"),
			}},
			{Name: "comment", Rules: []forms.Rule{
				forms.Required("comment is required"),
				forms.MaxLen(2000, "comment must be at most 2000 characters"),
			}},
			{Name: "rating", Rules: []forms.Rule{
				forms.Required("rating is required"),
				forms.IntRange(1, 5, "rating must be an integer between 1 and 5"),
			}},
		},
	}
}

type reviewRequest struct {
	UserName string `json:"user_name"`
	Comment  string `json:"comment"`
	Rating   int    `json:"rating"`
}

func (r reviewRequest) values() map[string]string {
	rating := ""
	if r.Rating != 0 {
		rating = strconv.Itoa(r.Rating)
	}
	return map[string]string{"user_name": r.UserName, "comment": r.Comment, "rating": rating}
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	items, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	item, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "review not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	item := models.Review{
		UserName: values["user_name"],
		Comment:  values["comment"],
		Rating:   req.Rating,
	}
	if err := h.repo.Create(c.UserContext(), &item); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	item, err := h.repo.Update(c.UserContext(), id, map[string]interface{}{
		"user_name": values["user_name"],
		"comment":   values["comment"],
		"rating":    req.Rating,
	})
	if err == gorm.ErrRecordNotFound {
		return fiber.NewError(fiber.StatusNotFound, "review not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
