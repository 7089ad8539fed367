package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/apierror"
	"github.com/example/tavola/internal/forms"
	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
)

// ContactInfoHandler manages displayed contact details.
type ContactInfoHandler struct {
	repo   repository.ContactInfoRepository
	schema forms.Schema
}

// NewContactInfoHandler constructs ContactInfoHandler.
func NewContactInfoHandler(repo repository.ContactInfoRepository) *ContactInfoHandler {
	return &ContactInfoHandler{
		repo: repo,
		schema: forms.Schema{
			{Name: "type", Rules: []forms.Rule{
				forms.Required("type is required"),
				forms.OneOf(models.ContactInfoTypes, "unknown contact info type"),
			}},
			{Name: "value", Rules: []forms.Rule{
				forms.Required("value is required"),
			}},
			{Name: "label", Rules: []forms.Rule{
				forms.MaxLen(100, "label must be at most 100 characters"),
			}},
		},
	}
}

type contactInfoRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

func (r contactInfoRequest) values() map[string]string {
	return map[string]string{"type": r.Type, "value": r.Value, "label": r.Label}
}

func (h *ContactInfoHandler) List(c *fiber.Ctx) error {
	items, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *ContactInfoHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	item, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "contact info not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *ContactInfoHandler) Create(c *fiber.Ctx) error {
	var req contactInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	item := models.ContactInfo{
		Type:  values["type"],
		Value: values["value"],
		Label: values["label"],
	}
	if err := h.repo.Create(c.UserContext(), &item); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *ContactInfoHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req contactInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	item, err := h.repo.Update(c.UserContext(), id, map[string]interface{}{
		"type":  values["type"],
		"value": values["value"],
		"label": values["label"],
	})
	if err == gorm.ErrRecordNotFound {
		return fiber.NewError(fiber.StatusNotFound, "contact info not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *ContactInfoHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
