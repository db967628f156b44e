package lists

import (
	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/approvalchain"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

var chainEntities = map[string]bool{"campaign": true, "payment": true} //nolint:gochecknoglobals

// MatchApprovalChain returns the active chain that applies to ?entity= and ?amount=.
func (s *Service) MatchApprovalChain(c fiber.Ctx) error {
	entity := c.Query("entity")
	if !chainEntities[entity] {
		return handler.NewError(fiber.StatusBadRequest, "entity must be campaign or payment")
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || amount.IsNegative() {
		return handler.NewError(fiber.StatusBadRequest, "amount must be a non negative decimal")
	}

	chain, err := approvalchain.Match(s.deps.DB, entity, amount)
	if err != nil {
		return handler.FromDomain(err)
	}

	return c.JSON(chain)
}
