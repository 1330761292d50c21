package ledger_test

// An in-memory ledger store used by the executor tests. It mirrors the
// contract the engine requires from the real store: GetForUpdate blocks on a
// per-account mutex until the holding unit ends, writes are staged and only
// become visible on commit, and every lock is released on either exit path.
// That makes the atomicity and deadlock-freedom tests meaningful rather
// than mocked.

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	domain "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/alpenbank/ledger/pkg/dto"
	"github.com/alpenbank/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errNoUnit = errors.New("repository requested outside a unit of work")

type memAccount struct {
	mu   sync.Mutex
	read dto.AccountRead
}

type memStore struct {
	mu        sync.Mutex
	accounts  map[uuid.UUID]*memAccount
	byContact map[string]uuid.UUID // normalized contact -> owner id
	entries   []dto.EntryRead
	nextSeq   int64

	// failAppend, when set, makes every log append fail. Used to prove
	// the unit rolls back balance mutations that already happened.
	failAppend error
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  make(map[uuid.UUID]*memAccount),
		byContact: make(map[string]uuid.UUID),
	}
}

// seedAccount registers an account directly, bypassing the engine.
func (s *memStore) seedAccount(ownerID uuid.UUID, contact, code, balance string) dto.AccountRead {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	read := dto.AccountRead{
		ID:        uuid.New(),
		Seq:       s.nextSeq,
		OwnerID:   ownerID,
		Balance:   decimal.RequireFromString(balance),
		Currency:  code,
		CreatedAt: time.Now(),
	}
	s.accounts[read.ID] = &memAccount{read: read}
	if contact != "" {
		s.byContact[strings.ToLower(strings.TrimSpace(contact))] = ownerID
	}
	return read
}

func (s *memStore) balanceOf(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id].read.Balance
}

func (s *memStore) entriesOf(id uuid.UUID) []dto.EntryRead {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []dto.EntryRead
	for _, e := range s.entries {
		if e.AccountID == id {
			out = append(out, e)
		}
	}
	return out
}

// memUoW is the unit-of-work root handed to the service.
type memUoW struct {
	store *memStore
	unit  *memUnit // nil outside Do
}

func newMemUoW(store *memStore) *memUoW {
	return &memUoW{store: store}
}

// memUnit is one atomic unit: the set of held locks plus staged writes.
type memUnit struct {
	store    *memStore
	locked   []*memAccount
	lockedID map[uuid.UUID]bool
	balances map[uuid.UUID]decimal.Decimal
	pending  []dto.EntryCreate
}

func (u *memUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	unit := &memUnit{
		store:    u.store,
		lockedID: make(map[uuid.UUID]bool),
		balances: make(map[uuid.UUID]decimal.Decimal),
	}
	err := fn(&memUoW{store: u.store, unit: unit})
	if err == nil {
		unit.commit()
	}
	// Locks release on both exit paths, in reverse acquisition order.
	for _, acc := range slices.Backward(unit.locked) {
		acc.mu.Unlock()
	}
	return err
}

func (u *memUoW) AccountRepository() (repository.AccountRepository, error) {
	if u.unit == nil {
		return nil, errNoUnit
	}
	return u.unit, nil
}

func (u *memUoW) EntryRepository() (repository.EntryRepository, error) {
	if u.unit == nil {
		return nil, errNoUnit
	}
	return u.unit, nil
}

func (u *memUoW) OwnerDirectory() (repository.OwnerDirectory, error) {
	if u.unit == nil {
		return nil, errNoUnit
	}
	return u.unit, nil
}

func (un *memUnit) commit() {
	un.store.mu.Lock()
	defer un.store.mu.Unlock()
	for id, balance := range un.balances {
		un.store.accounts[id].read.Balance = balance
		un.store.accounts[id].read.UpdatedAt = time.Now()
	}
	for _, e := range un.pending {
		un.store.entries = append(un.store.entries, dto.EntryRead{
			ID:           e.ID,
			AccountID:    e.AccountID,
			Type:         e.Type,
			Amount:       e.Amount,
			Currency:     e.Currency,
			Fee:          e.Fee,
			Counterparty: e.Counterparty,
			Description:  e.Description,
			CreatedAt:    time.Now(),
		})
	}
}

func (un *memUnit) lookup(id uuid.UUID) (*memAccount, error) {
	un.store.mu.Lock()
	defer un.store.mu.Unlock()
	acc, ok := un.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// snapshot returns the row as this unit sees it: committed state overlaid
// with the unit's own staged balance.
func (un *memUnit) snapshot(acc *memAccount) *dto.AccountRead {
	un.store.mu.Lock()
	read := acc.read
	un.store.mu.Unlock()
	if staged, ok := un.balances[read.ID]; ok {
		read.Balance = staged
	}
	return &read
}

func (un *memUnit) Create(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error) {
	un.store.mu.Lock()
	defer un.store.mu.Unlock()
	un.store.nextSeq++
	read := dto.AccountRead{
		ID:        create.ID,
		Seq:       un.store.nextSeq,
		OwnerID:   create.OwnerID,
		Balance:   decimal.Zero,
		Currency:  create.Currency,
		CreatedAt: time.Now(),
	}
	un.store.accounts[read.ID] = &memAccount{read: read}
	return &read, nil
}

func (un *memUnit) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	acc, err := un.lookup(id)
	if err != nil {
		return nil, err
	}
	return un.snapshot(acc), nil
}

func (un *memUnit) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	acc, err := un.lookup(id)
	if err != nil {
		return nil, err
	}
	if !un.lockedID[id] {
		acc.mu.Lock()
		un.locked = append(un.locked, acc)
		un.lockedID[id] = true
	}
	return un.snapshot(acc), nil
}

func (un *memUnit) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if _, err := un.lookup(id); err != nil {
		return err
	}
	un.balances[id] = balance
	return nil
}

func (un *memUnit) Append(ctx context.Context, create dto.EntryCreate) error {
	if un.store.failAppend != nil {
		return un.store.failAppend
	}
	un.pending = append(un.pending, create)
	return nil
}

func (un *memUnit) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.EntryRead, error) {
	un.store.mu.Lock()
	defer un.store.mu.Unlock()
	var out []*dto.EntryRead
	for _, e := range slices.Backward(un.store.entries) {
		if e.AccountID == accountID {
			entry := e
			out = append(out, &entry)
		}
	}
	return out, nil
}

func (un *memUnit) FindAccountByOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error) {
	un.store.mu.Lock()
	defer un.store.mu.Unlock()
	var best *dto.AccountRead
	for _, acc := range un.store.accounts {
		if acc.read.OwnerID != ownerID {
			continue
		}
		if best == nil || acc.read.Seq < best.Seq {
			read := acc.read
			best = &read
		}
	}
	if best == nil {
		return uuid.Nil, domain.ErrAccountNotFound
	}
	return best.ID, nil
}

func (un *memUnit) FindAccountByContact(ctx context.Context, contact string) (uuid.UUID, error) {
	un.store.mu.Lock()
	ownerID, ok := un.store.byContact[strings.ToLower(strings.TrimSpace(contact))]
	un.store.mu.Unlock()
	if !ok {
		return uuid.Nil, domain.ErrAccountNotFound
	}
	return un.FindAccountByOwner(ctx, ownerID)
}
