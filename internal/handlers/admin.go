package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
	"github.com/example/tavola/internal/utils"
)

// AdminHandler serves the dashboard and the security-event log.
type AdminHandler struct {
	db     *gorm.DB
	events repository.SecurityEventRepository
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, events repository.SecurityEventRepository) *AdminHandler {
	return &AdminHandler{db: db, events: events}
}

// DashboardStats returns row counts per entity plus the latest submissions.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	counts := fiber.Map{}
	for name, model := range map[string]interface{}{
		"contact_info":        &models.ContactInfo{},
		"reviews":             &models.Review{},
		"content_sections":    &models.ContentSection{},
		"partners_logos":      &models.Partner{},
		"contact_submissions": &models.ContactSubmission{},
	} {
		var total int64
		if err := h.db.WithContext(c.UserContext()).Model(model).Count(&total).Error; err != nil {
			return err
		}
		counts[name] = total
	}

	var latest []models.ContactSubmission
	if err := h.db.WithContext(c.UserContext()).
		Order("submitted_at desc").Limit(5).Find(&latest).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"counts":             counts,
			"latest_submissions": latest,
		},
	})
}

// SecurityEvents lists recent authentication events, newest first.
func (h *AdminHandler) SecurityEvents(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	events, total, err := h.events.Recent(c.UserContext(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": events, "pagination": fiber.Map{
		"current_page":   pg.Page,
		"items_per_page": pg.Limit,
		"total_items":    total,
	}})
}
