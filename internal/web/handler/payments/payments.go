// Package payments serves the payments dashboard, manual transactions and name suggestions.
package payments

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/manual"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/payment"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/suggestion"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

const (
	// Path is the path of the payments resource.
	Path = handler.APIPath + "/payments"

	// ManualPath is the path of the manual transactions.
	ManualPath = Path + "/manual"

	// SuggestionsPath serves brand and influencer name suggestions.
	SuggestionsPath = handler.APIPath + "/suggestions"
)

// CreateInput is the body of a new payment.
type CreateInput struct {
	Type         string          `json:"type" validate:"required,oneof=BRAND_PAYMENT INFLUENCER_PAYOUT"`
	Amount       decimal.Decimal `json:"amount"`
	Advance      decimal.Decimal `json:"advance"`
	Status       string          `json:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE"`
	CampaignID   *uint64         `json:"campaignId"`
	BrandID      *uint64         `json:"brandId"`
	InfluencerID *uint64         `json:"influencerId"`
	Note         string          `json:"note" validate:"max=500"`
}

// StatusInput is the body of a status change.
type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID OVERDUE"`
}

// Service is the payments handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
	now  func() time.Time
}

// Handler is the payments handler.
var Handler = Service{}

// Init initializes the payments handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps
	if s.now == nil {
		s.now = time.Now
	}

	read := deps.Auth.Guard(auth.ResourcePayments, auth.ActionRead)
	write := deps.Auth.Guard(auth.ResourcePayments, auth.ActionWrite)

	app.Get(Path, read, s.Summary)
	app.Post(Path, write, s.Create)
	app.Patch(Path+"/:id/status", write, s.UpdateStatus)

	app.Get(ManualPath, read, s.ListManual)
	app.Get(ManualPath+"/:id", read, s.GetManual)
	app.Post(ManualPath, write, s.UpsertManual)
	app.Delete(ManualPath+"/:id", write, s.DeleteManual)

	app.Get(SuggestionsPath, read, s.Suggestions)

	return nil
}

// Summary returns both payment lists, the totals and the six month series.
func (s *Service) Summary(c fiber.Ctx) error {
	page, limit := handler.Page(c)

	summary, err := payment.Summarize(s.deps.DB, page, limit, s.now())
	if err != nil {
		return handler.FromDomain(err)
	}

	return c.JSON(summary)
}

// Create stores a new payment.
func (s *Service) Create(c fiber.Ctx) error {
	var in CreateInput
	if err := s.deps.Bind(c, &in); err != nil {
		return err
	}

	if !in.Amount.IsPositive() {
		return handler.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	if in.Advance.IsNegative() || in.Advance.GreaterThan(in.Amount) {
		return handler.NewError(fiber.StatusBadRequest, "advance must be between 0 and amount")
	}

	p := &models.Payment{
		Type:         in.Type,
		Amount:       in.Amount,
		Advance:      in.Advance,
		Balance:      in.Amount.Sub(in.Advance),
		Status:       in.Status,
		CampaignID:   in.CampaignID,
		BrandID:      in.BrandID,
		InfluencerID: in.InfluencerID,
		Note:         in.Note,
	}

	if err := payment.Create(s.deps.DB, p); err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.PaymentCreated, p)

	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateStatus changes the status of a payment.
func (s *Service) UpdateStatus(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	var in StatusInput
	if err := s.deps.Bind(c, &in); err != nil {
		return err
	}

	p, err := payment.UpdateStatus(s.deps.DB, id, in.Status)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.PaymentStatusChanged, p)

	return c.JSON(p)
}

// ListManual returns a page of manual transactions, newest first.
func (s *Service) ListManual(c fiber.Ctx) error {
	page, limit := handler.Page(c)

	items, total, err := manual.List(s.deps.DB, page, limit)
	if err != nil {
		return handler.FromDomain(err)
	}

	return c.JSON(handler.NewPage(items, total, page, limit))
}

// GetManual returns one manual transaction.
func (s *Service) GetManual(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	mt, err := manual.Get(s.deps.DB, id)
	if err != nil {
		return handler.FromDomain(err)
	}

	return c.JSON(mt)
}

// UpsertManual creates a manual transaction, or updates it when the body carries an id.
func (s *Service) UpsertManual(c fiber.Ctx) error {
	var in manual.Input
	if err := s.deps.Bind(c, &in); err != nil {
		return err
	}

	created := in.ID == nil

	mt, err := manual.Upsert(s.deps.DB, in)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.ManualTransactionSave, mt)

	if created {
		return c.Status(fiber.StatusCreated).JSON(mt)
	}

	return c.JSON(mt)
}

// DeleteManual removes a manual transaction and its linked payments.
func (s *Service) DeleteManual(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	if err := manual.Delete(s.deps.DB, id); err != nil {
		return handler.FromDomain(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Suggestions returns up to eight matching names. Failures answer with an empty list.
func (s *Service) Suggestions(c fiber.Ctx) error {
	names, err := suggestion.Names(s.deps.DB, c.Query("type"), c.Query("query"))
	if err != nil {
		log.Warn().Err(err).Str("type", c.Query("type")).Msg("failed to load suggestions")
	}

	if names == nil {
		names = []string{}
	}

	return c.JSON(names)
}
