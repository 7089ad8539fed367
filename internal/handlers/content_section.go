package handlers

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/apierror"
	"github.com/example/tavola/internal/forms"
	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
)

var sectionKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ContentSectionHandler manages admin-editable page copy.
type ContentSectionHandler struct {
	repo   repository.ContentSectionRepository
	schema forms.Schema
}

// NewContentSectionHandler constructs ContentSectionHandler.
func NewContentSectionHandler(repo repository.ContentSectionRepository) *ContentSectionHandler {
	return &ContentSectionHandler{
		repo: repo,
		schema: forms.Schema{
			{Name: "section_key", Rules: []forms.Rule{
				forms.Required("section key is required"),
				forms.Pattern(sectionKeyPattern, "section key must be lowercase snake_case"),
				forms.MaxLen(100, "section key must be at most 100 characters"),
			}},
			{Name: "title", Rules: []forms.Rule{
				forms.MaxLen(200, "title must be at most 200 characters"),
			}},
			{Name: "content", Rules: []forms.Rule{
				forms.MaxLen(5000, "content must be at most 5000 characters"),
			}},
			{Name: "image_url", Rules: []forms.Rule{
				forms.URL("image url must be a valid URL"),
			}},
		},
	}
}

type contentSectionRequest struct {
	SectionKey string `json:"section_key"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
}

func (r contentSectionRequest) values() map[string]string {
	return map[string]string{
		"section_key": r.SectionKey,
		"title":       r.Title,
		"content":     r.Content,
		"image_url":   r.ImageURL,
	}
}

func (h *ContentSectionHandler) List(c *fiber.Ctx) error {
	items, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *ContentSectionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	item, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "content section not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// GetByKey serves a single section for the public pages.
func (h *ContentSectionHandler) GetByKey(c *fiber.Ctx) error {
	item, err := h.repo.GetByKey(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "content section not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *ContentSectionHandler) Create(c *fiber.Ctx) error {
	var req contentSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	existing, err := h.repo.GetByKey(c.UserContext(), values["section_key"])
	if err != nil {
		return err
	}
	if existing != nil {
		return apierror.NewValidation(map[string]string{"section_key": "section key already in use"})
	}

	item := models.ContentSection{
		SectionKey: values["section_key"],
		Title:      values["title"],
		Content:    values["content"],
		ImageURL:   values["image_url"],
	}
	if err := h.repo.Create(c.UserContext(), &item); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// Update edits title, content and image; section_key is immutable and any
// value sent for it is ignored.
func (h *ContentSectionHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req contentSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	delete(values, "section_key")
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		delete(fieldErrs, "section_key")
		if len(fieldErrs) > 0 {
			return apierror.NewValidation(fieldErrs)
		}
	}

	item, err := h.repo.Update(c.UserContext(), id, map[string]interface{}{
		"title":     values["title"],
		"content":   values["content"],
		"image_url": values["image_url"],
	})
	if err == gorm.ErrRecordNotFound {
		return fiber.NewError(fiber.StatusNotFound, "content section not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *ContentSectionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
