package handlers

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tavola/internal/export"
	"github.com/example/tavola/internal/repository"
)

// ExportHandler serves CSV downloads and JSON backup bundles.
type ExportHandler struct {
	contactInfo repository.ContactInfoRepository
	reviews     repository.ReviewRepository
	sections    repository.ContentSectionRepository
	partners    repository.PartnerRepository
	submissions repository.SubmissionRepository
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(
	contactInfo repository.ContactInfoRepository,
	reviews repository.ReviewRepository,
	sections repository.ContentSectionRepository,
	partners repository.PartnerRepository,
	submissions repository.SubmissionRepository,
) *ExportHandler {
	return &ExportHandler{
		contactInfo: contactInfo,
		reviews:     reviews,
		sections:    sections,
		partners:    partners,
		submissions: submissions,
	}
}

// CSV streams one entity list as a CSV attachment. The :entity param names
// the backend collection.
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	ctx := c.UserContext()
	entity := c.Params("entity")

	var (
		payload []byte
		err     error
	)
	switch entity {
	case "contact_info":
		items, ferr := h.contactInfo.GetAll(ctx)
		if ferr != nil {
			return ferr
		}
		payload, err = export.ContactInfoCSV(items)
	case "reviews":
		items, ferr := h.reviews.GetAll(ctx)
		if ferr != nil {
			return ferr
		}
		payload, err = export.ReviewsCSV(items)
	case "content_sections":
		items, ferr := h.sections.GetAll(ctx)
		if ferr != nil {
			return ferr
		}
		payload, err = export.ContentSectionsCSV(items)
	case "partners_logos":
		items, ferr := h.partners.GetAll(ctx)
		if ferr != nil {
			return ferr
		}
		payload, err = export.PartnersCSV(items)
	case "contact_submissions":
		items, ferr := h.submissions.GetAll(ctx)
		if ferr != nil {
			return ferr
		}
		payload, err = export.SubmissionsCSV(items)
	default:
		return fiber.NewError(fiber.StatusNotFound, "unknown entity")
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, entity))
	return c.Send(payload)
}

// Backup streams a timestamped JSON bundle of all entities.
func (h *ExportHandler) Backup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	bundle := &export.Bundle{GeneratedAt: time.Now()}

	var err error
	if bundle.ContactInfo, err = h.contactInfo.GetAll(ctx); err != nil {
		return err
	}
	if bundle.Reviews, err = h.reviews.GetAll(ctx); err != nil {
		return err
	}
	if bundle.ContentSections, err = h.sections.GetAll(ctx); err != nil {
		return err
	}
	if bundle.Partners, err = h.partners.GetAll(ctx); err != nil {
		return err
	}
	if bundle.Submissions, err = h.submissions.GetAll(ctx); err != nil {
		return err
	}

	payload, err := bundle.Marshal()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, export.Filename(bundle.GeneratedAt)))
	return c.Send(payload)
}

// RestorePreview parses an uploaded backup bundle and returns its contents
// for display. Nothing is written.
func (h *ExportHandler) RestorePreview(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("backup")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "backup file is required")
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

	bundle, err := export.ParseBundle(data)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"counts": bundle.Counts(),
		"bundle": bundle,
	}})
}
