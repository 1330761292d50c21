// Package ledger exposes the transaction executor over a thin JSON
// surface. Authentication is an external collaborator: it hands callers an
// opaque owner identifier, which reaches this API through the X-Owner-ID
// header. No HTML, sessions or registration live here.
package ledger

import (
	"context"
	"time"

	"github.com/alpenbank/ledger/pkg/currency"
	domain "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/alpenbank/ledger/pkg/dto"
	"github.com/alpenbank/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerHeader carries the opaque owner identifier supplied by the
// authenticating collaborator.
const OwnerHeader = "X-Owner-ID"

// Ledger is the slice of the transaction executor the handlers call.
type Ledger interface {
	OpenAccount(ctx context.Context, ownerID uuid.UUID, code currency.Code) (*domain.Account, error)
	Balance(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, currency.Code, error)
	Entries(ctx context.Context, ownerID uuid.UUID) ([]*dto.EntryRead, error)
	Deposit(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, code currency.Code, description string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, code currency.Code, description string) (decimal.Decimal, error)
	Transfer(ctx context.Context, fromOwnerID uuid.UUID, toContact string, amount, fee decimal.Decimal, code currency.Code) (decimal.Decimal, error)
}

// Routes registers the ledger endpoints.
//
// Routes:
//   - POST /accounts           : open a zero-balance account for the caller.
//   - GET  /accounts/balance   : balance of the caller's primary account.
//   - GET  /accounts/entries   : transaction log, newest first.
//   - POST /accounts/deposit   : credit the primary account.
//   - POST /accounts/withdraw  : debit the primary account.
//   - POST /accounts/transfer  : move funds to another party's account.
func Routes(app *fiber.App, svc Ledger) {
	app.Post("/accounts", OpenAccount(svc))
	app.Get("/accounts/balance", Balance(svc))
	app.Get("/accounts/entries", Entries(svc))
	app.Post("/accounts/deposit", Deposit(svc))
	app.Post("/accounts/withdraw", Withdraw(svc))
	app.Post("/accounts/transfer", Transfer(svc))
}

func ownerFrom(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get(OwnerHeader)
	if raw == "" {
		return uuid.Nil, common.ErrorResponseJSON(
			c, fiber.StatusUnauthorized, "Unauthorized", "missing owner identity")
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, common.ErrorResponseJSON(
			c, fiber.StatusUnauthorized, "Unauthorized", "malformed owner identity")
	}
	return ownerID, nil
}

func parseAmount(c *fiber.Ctx, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, common.ErrorResponseJSON(
			c, fiber.StatusBadRequest, "Invalid amount", raw+" is not a decimal")
	}
	return amount, nil
}

func currencyOrDefault(raw string) currency.Code {
	if raw == "" {
		return currency.DefaultCurrency
	}
	return currency.Code(raw)
}

// OpenAccount returns the handler creating a new account for the caller.
func OpenAccount(svc Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := ownerFrom(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err
		}
		acc, err := svc.OpenAccount(c.Context(), ownerID, currencyOrDefault(input.Currency))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", AccountResponse{
			ID:       acc.ID.String(),
			Currency: acc.Currency.String(),
			Balance:  acc.Balance.String(),
		})
	}
}

// Balance returns the handler reading the caller's primary balance.
func Balance(svc Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := ownerFrom(c)
		if err != nil {
			return err
		}
		balance, code, err := svc.Balance(c.Context(), ownerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to read balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance", BalanceResponse{
			Balance:  balance.String(),
			Currency: code.String(),
		})
	}
}

// Entries returns the handler listing the caller's transaction log.
func Entries(svc Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := ownerFrom(c)
		if err != nil {
			return err
		}
		entries, err := svc.Entries(c.Context(), ownerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list entries", err)
		}
		out := make([]EntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, EntryResponse{
				ID:           e.ID.String(),
				Type:         e.Type,
				Amount:       e.Amount.String(),
				Currency:     e.Currency,
				Fee:          e.Fee.String(),
				Counterparty: e.Counterparty,
				Description:  e.Description,
				CreatedAt:    e.CreatedAt.Format(time.RFC3339),
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entries", out)
	}
}

// Deposit returns the handler crediting the caller's primary account.
func Deposit(svc Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := ownerFrom(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[MoveRequest](c)
		if input == nil {
			return err
		}
		amount, err := parseAmount(c, input.Amount)
		if err != nil {
			return err
		}
		newBalance, err := svc.Deposit(
			c.Context(), ownerID, amount, currencyOrDefault(input.Currency), input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", BalanceResponse{
			Balance:  newBalance.String(),
			Currency: currencyOrDefault(input.Currency).String(),
		})
	}
}

// Withdraw returns the handler debiting the caller's primary account.
func Withdraw(svc Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := ownerFrom(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[MoveRequest](c)
		if input == nil {
			return err
		}
		amount, err := parseAmount(c, input.Amount)
		if err != nil {
			return err
		}
		newBalance, err := svc.Withdraw(
			c.Context(), ownerID, amount, currencyOrDefault(input.Currency), input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", BalanceResponse{
			Balance:  newBalance.String(),
			Currency: currencyOrDefault(input.Currency).String(),
		})
	}
}

// Transfer returns the handler moving funds to another party.
func Transfer(svc Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := ownerFrom(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := parseAmount(c, input.Amount)
		if err != nil {
			return err
		}
		fee := decimal.Zero
		if input.Fee != "" {
			if fee, err = parseAmount(c, input.Fee); err != nil {
				return err
			}
		}
		newBalance, err := svc.Transfer(
			c.Context(), ownerID, input.To, amount, fee, currencyOrDefault(input.Currency))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", BalanceResponse{
			Balance:  newBalance.String(),
			Currency: currencyOrDefault(input.Currency).String(),
		})
	}
}
