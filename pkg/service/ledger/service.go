// Package ledger implements the transaction executor: deposit, withdraw and
// transfer as atomic units over the ledger store, enforcing every balance
// and currency invariant plus the lock-ordering protocol that keeps
// concurrent transfers deadlock free.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/alpenbank/ledger/pkg/currency"
	domain "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/alpenbank/ledger/pkg/dto"
	"github.com/alpenbank/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service executes ledger operations. It holds no mutable state of its own;
// concurrency comes from simultaneous callers and is serialized per account
// by the store's row locks.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service on top of the given unit of work.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// OpenAccount creates a new zero-balance account for ownerID denominated in
// code. It is called once at owner onboarding; the engine never deletes
// accounts.
func (s *Service) OpenAccount(
	ctx context.Context,
	ownerID uuid.UUID,
	code currency.Code,
) (*domain.Account, error) {
	acc, err := domain.New().WithOwner(ownerID).WithCurrency(code).Build()
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		stored, err := accounts.Create(ctx, dto.AccountCreate{
			ID:       acc.ID,
			OwnerID:  acc.OwnerID,
			Currency: acc.Currency.String(),
		})
		if err != nil {
			return err
		}
		acc.Seq = stored.Seq
		acc.CreatedAt = stored.CreatedAt
		return nil
	})
	if err != nil {
		s.logger.Error("open account failed", "owner", ownerID, "error", err)
		return nil, err
	}
	s.logger.Info("account opened", "owner", ownerID, "account", acc.ID, "currency", acc.Currency)
	return acc, nil
}

// Balance returns the current balance and currency of the owner's primary
// account. The read takes no row lock.
func (s *Service) Balance(
	ctx context.Context,
	ownerID uuid.UUID,
) (balance decimal.Decimal, code currency.Code, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountID, err := s.resolvePrimary(ctx, uow, ownerID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		read, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		balance, code = read.Balance, currency.Code(read.Currency)
		return nil
	})
	return balance, code, err
}

// Entries returns the transaction log of the owner's primary account,
// newest first.
func (s *Service) Entries(
	ctx context.Context,
	ownerID uuid.UUID,
) (entries []*dto.EntryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountID, err := s.resolvePrimary(ctx, uow, ownerID)
		if err != nil {
			return err
		}
		repo, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		entries, err = repo.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Deposit credits amount to the owner's primary account and appends one
// DEPOSIT log entry, all in one atomic unit. It returns the new balance.
func (s *Service) Deposit(
	ctx context.Context,
	ownerID uuid.UUID,
	amount decimal.Decimal,
	code currency.Code,
	description string,
) (decimal.Decimal, error) {
	if err := validateInput(amount, decimal.Zero, code); err != nil {
		return decimal.Zero, err
	}
	if description == "" {
		description = "Deposit"
	}
	var newBalance decimal.Decimal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountID, err := s.resolvePrimary(ctx, uow, ownerID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		locked, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		acc := accountFromRead(locked)
		if err = acc.ValidateDeposit(amount, code); err != nil {
			return err
		}
		acc.Credit(amount)
		if err = accounts.UpdateBalance(ctx, acc.ID, acc.Balance); err != nil {
			return err
		}
		entries, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		if err = entries.Append(ctx, dto.EntryCreate{
			ID:          uuid.New(),
			AccountID:   acc.ID,
			Type:        string(domain.EntryDeposit),
			Amount:      amount,
			Currency:    code.String(),
			Fee:         decimal.Zero,
			Description: description,
		}); err != nil {
			return err
		}
		newBalance = acc.Balance
		return nil
	})
	if err != nil {
		s.logger.Error("deposit failed", "owner", ownerID, "amount", amount, "currency", code, "error", err)
		return decimal.Zero, err
	}
	s.logger.Info("deposit committed", "owner", ownerID, "amount", amount, "currency", code)
	return newBalance, nil
}

// Withdraw debits amount from the owner's primary account and appends one
// WITHDRAWAL log entry, all in one atomic unit. The balance never goes
// negative as a result of this call. It returns the new balance.
func (s *Service) Withdraw(
	ctx context.Context,
	ownerID uuid.UUID,
	amount decimal.Decimal,
	code currency.Code,
	description string,
) (decimal.Decimal, error) {
	if err := validateInput(amount, decimal.Zero, code); err != nil {
		return decimal.Zero, err
	}
	if description == "" {
		description = "Withdrawal"
	}
	var newBalance decimal.Decimal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountID, err := s.resolvePrimary(ctx, uow, ownerID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		locked, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		acc := accountFromRead(locked)
		if err = acc.ValidateWithdraw(amount, code); err != nil {
			return err
		}
		if err = acc.Debit(amount); err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, acc.ID, acc.Balance); err != nil {
			return err
		}
		entries, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		if err = entries.Append(ctx, dto.EntryCreate{
			ID:          uuid.New(),
			AccountID:   acc.ID,
			Type:        string(domain.EntryWithdrawal),
			Amount:      amount,
			Currency:    code.String(),
			Fee:         decimal.Zero,
			Description: description,
		}); err != nil {
			return err
		}
		newBalance = acc.Balance
		return nil
	})
	if err != nil {
		s.logger.Error("withdrawal failed", "owner", ownerID, "amount", amount, "currency", code, "error", err)
		return decimal.Zero, err
	}
	s.logger.Info("withdrawal committed", "owner", ownerID, "amount", amount, "currency", code)
	return newBalance, nil
}

// Transfer moves amount from the sender's primary account to the account
// resolved from toContact, debiting the sender amount+fee and crediting the
// recipient amount. The fee is retained by the system: total balance across
// both accounts drops by exactly fee. Two TRANSFER log entries are
// appended, one per account, in the same atomic unit as both balance
// mutations. Transfer returns the sender's new balance.
func (s *Service) Transfer(
	ctx context.Context,
	fromOwnerID uuid.UUID,
	toContact string,
	amount decimal.Decimal,
	fee decimal.Decimal,
	code currency.Code,
) (decimal.Decimal, error) {
	if err := validateInput(amount, fee, code); err != nil {
		return decimal.Zero, err
	}
	var newBalance decimal.Decimal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		dir, err := uow.OwnerDirectory()
		if err != nil {
			return err
		}
		senderID, err := dir.FindAccountByOwner(ctx, fromOwnerID)
		if err != nil {
			return err
		}
		recipientID, err := dir.FindAccountByContact(ctx, toContact)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return domain.ErrRecipientNotFound
			}
			return err
		}
		if senderID == recipientID {
			return domain.ErrSameAccountTransfer
		}

		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		sender, recipient, err := lockPair(ctx, accounts, senderID, recipientID)
		if err != nil {
			return err
		}

		// All checks run on the freshly locked rows.
		if err = sender.ValidateTransferOut(amount, fee, code); err != nil {
			return err
		}
		if err = sender.Debit(amount.Add(fee)); err != nil {
			return err
		}
		recipient.Credit(amount)

		if err = accounts.UpdateBalance(ctx, sender.ID, sender.Balance); err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, recipient.ID, recipient.Balance); err != nil {
			return err
		}

		entries, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		toRef := "to:" + strings.TrimSpace(toContact)
		if err = entries.Append(ctx, dto.EntryCreate{
			ID:           uuid.New(),
			AccountID:    sender.ID,
			Type:         string(domain.EntryTransfer),
			Amount:       amount,
			Currency:     code.String(),
			Fee:          fee,
			Counterparty: &toRef,
			Description:  "Transfer out",
		}); err != nil {
			return err
		}
		fromRef := "from:" + fromOwnerID.String()
		if err = entries.Append(ctx, dto.EntryCreate{
			ID:           uuid.New(),
			AccountID:    recipient.ID,
			Type:         string(domain.EntryTransfer),
			Amount:       amount,
			Currency:     code.String(),
			Fee:          decimal.Zero,
			Counterparty: &fromRef,
			Description:  "Transfer in",
		}); err != nil {
			return err
		}
		newBalance = sender.Balance
		return nil
	})
	if err != nil {
		s.logger.Error("transfer failed",
			"from", fromOwnerID, "to", toContact,
			"amount", amount, "fee", fee, "currency", code, "error", err)
		return decimal.Zero, err
	}
	s.logger.Info("transfer committed",
		"from", fromOwnerID, "to", toContact,
		"amount", amount, "fee", fee, "currency", code)
	return newBalance, nil
}

// validateInput rejects caller-input faults before anything touches the
// store.
func validateInput(amount, fee decimal.Decimal, code currency.Code) error {
	if !amount.IsPositive() || fee.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if !currency.IsValidFormat(code.String()) {
		return domain.ErrInvalidCurrency
	}
	return nil
}

// lockPair acquires exclusive row locks on both accounts in ascending lock
// ordinal order, regardless of which side is the sender. Two concurrent
// transfers between the same pair always request locks in the same
// sequence, so they cannot form a wait cycle.
func lockPair(
	ctx context.Context,
	accounts repository.AccountRepository,
	senderID, recipientID uuid.UUID,
) (sender, recipient *domain.Account, err error) {
	senderPeek, err := accounts.Get(ctx, senderID)
	if err != nil {
		return nil, nil, err
	}
	recipientPeek, err := accounts.Get(ctx, recipientID)
	if err != nil {
		return nil, nil, err
	}

	first, second := senderID, recipientID
	if recipientPeek.Seq < senderPeek.Seq {
		first, second = recipientID, senderID
	}

	lockedFirst, err := accounts.GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	lockedSecond, err := accounts.GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if lockedFirst.ID == senderID {
		return accountFromRead(lockedFirst), accountFromRead(lockedSecond), nil
	}
	return accountFromRead(lockedSecond), accountFromRead(lockedFirst), nil
}

func accountFromRead(r *dto.AccountRead) *domain.Account {
	return &domain.Account{
		ID:        r.ID,
		Seq:       r.Seq,
		OwnerID:   r.OwnerID,
		Balance:   r.Balance,
		Currency:  currency.Code(r.Currency),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
