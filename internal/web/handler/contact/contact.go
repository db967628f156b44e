// Package contact serves the public contact form and the admin inbox of submissions.
package contact

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Path is the path of the contact submissions resource.
const Path = handler.APIPath + "/contact-submissions"

// SubmitInput is the body of the public contact form.
type SubmitInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// StatusInput is the body of a status change.
type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=new read archived"`
}

// Service is the contact handler service.
type Service struct {
	handler.Service
	deps     *handler.Deps
	resource handler.Resource[models.ContactSubmission]
}

// Handler is the contact handler.
var Handler = Service{}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	app.Post(Path, deps.Limit(), s.Submit)
	app.Patch(Path+"/:id", deps.Auth.Guard(auth.ResourceContact, auth.ActionWrite), s.UpdateStatus)

	s.resource = handler.Resource[models.ContactSubmission]{
		Path:       Path,
		Permission: auth.ResourceContact,
		NoCreate:   true,
		NoReplace:  true,
	}
	s.resource.Register(app, deps)

	return nil
}

// Submit stores a contact form submission and notifies the team.
func (s *Service) Submit(c fiber.Ctx) error {
	var in SubmitInput
	if err := s.deps.Bind(c, &in); err != nil {
		return err
	}

	sub := models.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
		Status:  models.ContactNew,
	}

	if err := crud.Create(s.deps.DB, &sub); err != nil {
		return handler.FromDomain(err)
	}

	subject := sub.Subject
	if subject == "" {
		subject = "New contact submission"
	}

	body := fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", sub.Name, sub.Email, sub.Phone, sub.Message)
	if err := s.deps.Mail.Notify(subject, body, sub.Email); err != nil {
		// the submission is stored, a failed notification must not fail the form
		log.Error().Err(err).Uint64("submission", sub.ID).Msg("contact notification failed")
	}

	s.deps.Emit(c, events.ContactSubmitted, fiber.Map{"id": sub.ID, "email": sub.Email, "subject": sub.Subject})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": sub.ID})
}

// UpdateStatus marks a submission new, read or archived.
func (s *Service) UpdateStatus(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	var in StatusInput
	if err := s.deps.Bind(c, &in); err != nil {
		return err
	}

	sub, err := crud.Get[models.ContactSubmission](s.deps.DB, id)
	if err != nil {
		return handler.FromDomain(err)
	}

	if err := s.deps.DB.Model(sub).Update("status", in.Status).Error; err != nil {
		return err
	}
	sub.Status = in.Status

	return c.JSON(sub)
}
