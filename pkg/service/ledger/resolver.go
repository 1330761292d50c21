package ledger

import (
	"context"

	domain "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/alpenbank/ledger/pkg/repository"
	"github.com/google/uuid"
)

// ResolvePrimaryAccount maps an owner identifier to that owner's primary
// account id. An owner may in principle hold several accounts; the primary
// is always the one with the lowest lock ordinal. That tie-break is an
// intentional, documented rule, not incidental ordering.
//
// A missing account is a fatal precondition failure for every engine
// operation and is never retried.
func (s *Service) ResolvePrimaryAccount(
	ctx context.Context,
	ownerID uuid.UUID,
) (accountID uuid.UUID, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accountID, err = s.resolvePrimary(ctx, uow, ownerID)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return accountID, nil
}

// resolvePrimary is the in-unit form used by the executor operations.
func (s *Service) resolvePrimary(
	ctx context.Context,
	uow repository.UnitOfWork,
	ownerID uuid.UUID,
) (uuid.UUID, error) {
	dir, err := uow.OwnerDirectory()
	if err != nil {
		return uuid.Nil, err
	}
	accountID, err := dir.FindAccountByOwner(ctx, ownerID)
	if err != nil {
		return uuid.Nil, err
	}
	if accountID == uuid.Nil {
		return uuid.Nil, domain.ErrAccountNotFound
	}
	return accountID, nil
}
