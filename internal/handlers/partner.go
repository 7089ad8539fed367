package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/apierror"
	"github.com/example/tavola/internal/forms"
	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
	"github.com/example/tavola/internal/services"
)

// PartnerHandler manages partner logos, their ordering and uploads.
type PartnerHandler struct {
	repo    repository.PartnerRepository
	service *services.PartnerService
	schema  forms.Schema
}

// NewPartnerHandler constructs PartnerHandler.
func NewPartnerHandler(repo repository.PartnerRepository, service *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		repo:    repo,
		service: service,
		schema: forms.Schema{
			{Name: "partner_name", Rules: []forms.Rule{
				forms.Required("partner name is required"),
				forms.MinLen(2, "partner name must be at least 2 characters"),
				forms.MaxLen(100, "partner name must be at most 100 characters"),
			}},
			{Name: "logo_url", Rules: []forms.Rule{
				forms.Required("logo url is required"),
				forms.URL("logo url must be a valid URL"),
			}},
			{Name: "website_url", Rules: []forms.Rule{
				forms.URL("website url must be a valid URL"),
			}},
		},
	}
}

type partnerRequest struct {
	PartnerName  string `json:"partner_name"`
	LogoURL      string `json:"logo_url"`
	WebsiteURL   string `json:"website_url"`
	DisplayOrder *int   `json:"display_order"`
}

func (r partnerRequest) values() map[string]string {
	return map[string]string{
		"partner_name": r.PartnerName,
		"logo_url":     r.LogoURL,
		"website_url":  r.WebsiteURL,
	}
}

func (h *PartnerHandler) List(c *fiber.Ctx) error {
	items, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *PartnerHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	item, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "partner not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// Create appends the partner at the end of the display sequence unless an
// explicit display_order is supplied.
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var req partnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	order := 0
	if req.DisplayOrder != nil {
		order = *req.DisplayOrder
	} else {
		next, err := h.service.NextDisplayOrder(c.UserContext())
		if err != nil {
			return err
		}
		order = next
	}

	item := models.Partner{
		PartnerName:  values["partner_name"],
		LogoURL:      values["logo_url"],
		WebsiteURL:   values["website_url"],
		DisplayOrder: order,
	}
	if err := h.repo.Create(c.UserContext(), &item); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req partnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := h.schema.SanitizeAll(req.values())
	if fieldErrs := h.schema.Validate(values); len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	patch := map[string]interface{}{
		"partner_name": values["partner_name"],
		"logo_url":     values["logo_url"],
		"website_url":  values["website_url"],
	}
	if req.DisplayOrder != nil {
		patch["display_order"] = *req.DisplayOrder
	}

	item, err := h.repo.Update(c.UserContext(), id, patch)
	if err == gorm.ErrRecordNotFound {
		return fiber.NewError(fiber.StatusNotFound, "partner not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type reorderRequest struct {
	Source      int `json:"source"`
	Destination int `json:"destination"`
}

// Reorder moves one partner in the display sequence. The response always
// carries the list the database actually holds, even when persistence
// failed midway.
func (h *PartnerHandler) Reorder(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	items, err := h.service.Reorder(c.UserContext(), req.Source, req.Destination)
	if errors.Is(err, services.ErrReorderOutOfRange) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		if items != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "reorder failed, list refreshed from storage",
				"data":    items,
			})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// UploadLogo accepts a multipart image and returns the stored public URL.
func (h *PartnerHandler) UploadLogo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "logo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file")
	}

	url, err := h.service.UploadLogo(c.UserContext(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"url": url}})
}
