package handlers

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/tavola/internal/apierror"
	"github.com/example/tavola/internal/forms"
	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
	"github.com/example/tavola/internal/utils"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)

// ContactFormSchema is the ruleset for the public contact form.
func ContactFormSchema() forms.Schema {
	return forms.Schema{
		{Name: "name", Rules: []forms.Rule{
			forms.Required("name is required"),
			forms.MinLen(2, "name must be at least 2 characters"),
			forms.MaxLen(100, "name must be at most 100 characters"),
		}},
		{Name: "email", Sanitize: forms.SanitizeEmail, Rules: []forms.Rule{
			forms.Required("email is required"),
			forms.Email("email must be a valid address"),
		}},
		{Name: "phone", Rules: []forms.Rule{
			forms.Pattern(phonePattern, "phone must be a valid number"),
		}},
		{Name: "subject", Rules: []forms.Rule{
			forms.Required("subject is required"),
			forms.MinLen(5, "subject must be at least 5 characters"),
			forms.MaxLen(200, "subject must be at most 200 characters"),
		}},
		{Name: "message", Rules: []forms.Rule{
			forms.Required("message is required"),
			forms.MinLen(10, "message must be at least 10 characters"),
			forms.MaxLen(2000, "message must be at most 2000 characters"),
		}},
	}
}

// SubmissionHandler accepts public contact-form posts and serves the admin
// inbox over the stored submissions.
type SubmissionHandler struct {
	repo   repository.SubmissionRepository
	schema forms.Schema
	log    zerolog.Logger
}

// NewSubmissionHandler constructs SubmissionHandler.
func NewSubmissionHandler(repo repository.SubmissionRepository, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{repo: repo, schema: ContactFormSchema(), log: log}
}

type contactFormRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type submissionMeta struct{}

type submissionMetaValue struct {
	ip        string
	userAgent string
}

// store is the form's submit function; request metadata arrives via context.
func (h *SubmissionHandler) store(ctx context.Context, values map[string]string) error {
	meta, _ := ctx.Value(submissionMeta{}).(submissionMetaValue)
	submission := models.ContactSubmission{
		Name:        values["name"],
		Email:       values["email"],
		Phone:       values["phone"],
		Subject:     values["subject"],
		Message:     values["message"],
		SubmittedAt: time.Now(),
		IPAddress:   meta.ip,
		UserAgent:   meta.userAgent,
	}
	return h.repo.Create(ctx, &submission)
}

// Submit handles the public contact form post.
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	var req contactFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	ctx := context.WithValue(c.UserContext(), submissionMeta{}, submissionMetaValue{
		ip:        c.IP(),
		userAgent: c.Get(fiber.HeaderUserAgent),
	})

	// The in-flight guard is per form instance; one instance per request
	// keeps separate visitors from blocking each other.
	form := forms.New("contact-form", h.schema, h.store, h.log)
	fieldErrs, err := form.Submit(ctx, map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"subject": req.Subject,
		"message": req.Message,
	})
	if errors.Is(err, forms.ErrSubmitInFlight) {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		return apierror.NewValidation(fieldErrs)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "thank you, we will get back to you shortly",
	})
}

// List serves the admin inbox, newest first.
func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	items, total, err := h.repo.List(c.UserContext(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items, "pagination": fiber.Map{
		"current_page":   pg.Page,
		"items_per_page": pg.Limit,
		"total_items":    total,
	}})
}

func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	item, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "submission not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *SubmissionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
