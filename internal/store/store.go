// Package store owns the live ledger state. It validates entries, serializes
// mutations and persists a snapshot after every change.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/GustavoCaso/finbot/internal/filter"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/storage"
	"github.com/GustavoCaso/finbot/internal/util"
)

var (
	ErrInvalidAmount        = errors.New("amount must be a non-negative number")
	ErrInvalidType          = errors.New("type must be income or expense")
	ErrInvalidDate          = errors.New("date is required")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrCategoryTypeMismatch = errors.New("category does not accept this transaction type")
	ErrEmptyName            = errors.New("name is required")
	ErrInvalidCategoryType  = errors.New("category type must be income, expense or both")
	ErrInvalidFilter        = errors.New("invalid filter")
	ErrDuplicateID          = errors.New("generated ID is already in use")
)

const saveTimeout = 5 * time.Second

// TransactionInput is a transaction as entered by a user. The store fills in
// the ID and creation time.
type TransactionInput struct {
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        ledger.Date `json:"date"`
	Type        ledger.Type `json:"type"`
}

type CategoryInput struct {
	Name  string              `json:"name"`
	Color string              `json:"color"`
	Icon  string              `json:"icon"`
	Type  ledger.CategoryType `json:"type"`
}

type Store struct {
	mu      sync.RWMutex
	state   ledger.State
	storage storage.Storage
	logger  *logger.Logger
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

// WithClock replaces time.Now as the source of creation times and of the
// reference instant for queries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// Open loads the persisted snapshot into a new Store. A missing snapshot
// starts from the default categories and sample transactions; so does a
// corrupt one, after logging a warning.
func Open(ctx context.Context, stor storage.Storage, logger *logger.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		storage: stor,
		logger:  logger,
		now:     time.Now,
		newID:   util.GenerateID,
	}

	for _, opt := range opts {
		opt(s)
	}

	state := ledger.NewState()

	snapshot, err := stor.Load(ctx)
	switch {
	case err == nil:
		state.Transactions = snapshot.Transactions
		state.Categories = snapshot.Categories
		logger.Debug("Loaded snapshot",
			"transactions", len(snapshot.Transactions),
			"categories", len(snapshot.Categories))
	case errors.Is(err, &storage.NotFoundError{}):
		logger.Info("No saved ledger found, starting from defaults")
	case errors.Is(err, &storage.CorruptSnapshotError{}):
		logger.Warn("Discarding corrupt ledger snapshot", "error", err.Error())
	default:
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	s.state = state
	return s, nil
}

// State returns the current state. The value is never mutated afterwards.
func (s *Store) State() ledger.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Now is the reference instant the store answers queries with.
func (s *Store) Now() time.Time {
	return s.now()
}

// View returns the current state with p applied to its filter. The stored
// filter is left untouched.
func (s *Store) View(p filter.Patch) (ledger.State, error) {
	state := s.State().SetFilter(p)
	if err := state.Filter.Validate(); err != nil {
		return ledger.State{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return state, nil
}

func (s *Store) Filtered() []ledger.Transaction {
	return s.State().Filtered(s.now())
}

func (s *Store) Summary() ledger.Summary {
	return s.State().Summary(s.now())
}

func (s *Store) CategoryChart() ledger.ChartData {
	return s.State().CategoryChart(s.now())
}

func (s *Store) MonthlyChart() ledger.ChartData {
	return s.State().MonthlyChart(s.now())
}

func (s *Store) AddTransaction(input TransactionInput) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := ledger.Transaction{
		ID:          s.newID(),
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Date:        input.Date,
		Type:        input.Type,
		CreatedAt:   s.now(),
	}

	if _, taken := s.state.Transaction(t.ID); taken {
		return ledger.Transaction{}, fmt.Errorf("%w: transaction %s", ErrDuplicateID, t.ID)
	}

	if err := validateTransaction(t, s.state.Categories, true); err != nil {
		return ledger.Transaction{}, err
	}

	s.commit(s.state.AddTransaction(t), "add transaction")
	return t, nil
}

// ImportTransactions adds every input or none of them. The whole batch is
// saved once.
func (s *Store) ImportTransactions(inputs []TransactionInput) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	imported := make([]ledger.Transaction, 0, len(inputs))

	for i, input := range inputs {
		t := ledger.Transaction{
			ID:          s.newID(),
			Amount:      input.Amount,
			Description: strings.TrimSpace(input.Description),
			Category:    input.Category,
			Date:        input.Date,
			Type:        input.Type,
			CreatedAt:   s.now(),
		}

		if _, taken := state.Transaction(t.ID); taken {
			return nil, fmt.Errorf("transaction %d: %w: %s", i+1, ErrDuplicateID, t.ID)
		}

		if err := validateTransaction(t, state.Categories, true); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}

		state = state.AddTransaction(t)
		imported = append(imported, t)
	}

	if len(imported) == 0 {
		return imported, nil
	}

	s.commit(state, "import transactions")
	return imported, nil
}

func (s *Store) UpdateTransaction(id string, patch ledger.TransactionPatch) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.state.Transaction(id)
	if !ok {
		return ledger.Transaction{}, &ledger.NotFoundError{Kind: "transaction", ID: id}
	}

	// a dangling category only has to resolve when the update touches it
	checkCategory := patch.Category != nil || patch.Type != nil
	if err := validateTransaction(current.Apply(patch), s.state.Categories, checkCategory); err != nil {
		return ledger.Transaction{}, err
	}

	state, updated, err := s.state.UpdateTransaction(id, patch)
	if err != nil {
		return ledger.Transaction{}, err
	}

	s.commit(state, "update transaction")
	return updated, nil
}

func (s *Store) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.state.DeleteTransaction(id)
	if err != nil {
		return err
	}

	s.commit(state, "delete transaction")
	return nil
}

func (s *Store) AddCategory(input CategoryInput) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := ledger.Category{
		ID:    s.newID(),
		Name:  strings.TrimSpace(input.Name),
		Color: input.Color,
		Icon:  input.Icon,
		Type:  input.Type,
	}

	if _, taken := s.state.Category(c.ID); taken {
		return ledger.Category{}, fmt.Errorf("%w: category %s", ErrDuplicateID, c.ID)
	}

	if err := validateCategory(c); err != nil {
		return ledger.Category{}, err
	}

	s.commit(s.state.AddCategory(c), "add category")
	return c, nil
}

func (s *Store) UpdateCategory(id string, patch ledger.CategoryPatch) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.state.Category(id)
	if !ok {
		return ledger.Category{}, &ledger.NotFoundError{Kind: "category", ID: id}
	}

	if err := validateCategory(current.Apply(patch)); err != nil {
		return ledger.Category{}, err
	}

	state, updated, err := s.state.UpdateCategory(id, patch)
	if err != nil {
		return ledger.Category{}, err
	}

	s.commit(state, "update category")
	return updated, nil
}

// DeleteCategory removes a category. Transactions that reference it keep the
// dangling ID.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.state.DeleteCategory(id)
	if err != nil {
		return err
	}

	s.commit(state, "delete category")
	return nil
}

// SetFilter patches the active filter. The filter is not persisted.
func (s *Store) SetFilter(patch filter.Patch) (filter.Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state.SetFilter(patch)
	if err := state.Filter.Validate(); err != nil {
		return filter.Filter{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	s.state = state
	return state.Filter, nil
}

func (s *Store) ReplaceFilter(f filter.Filter) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.ReplaceFilter(f)
	return nil
}

// Reset restores the default categories, sample transactions and filter.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ledger.NewState(), "reset")
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}

// commit installs state and persists it. Must be called with s.mu held.
// A failed save is logged and does not undo the mutation.
func (s *Store) commit(state ledger.State, op string) {
	s.state = state

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.storage.Save(ctx, storage.SnapshotOf(state)); err != nil {
		s.logger.Error("Failed to save ledger", "op", op, "error", err.Error())
		return
	}

	s.logger.Debug("Saved ledger", "op", op, "transactions", len(state.Transactions))
}

func validateTransaction(t ledger.Transaction, categories []ledger.Category, checkCategory bool) error {
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}

	if !t.Type.Valid() {
		return ErrInvalidType
	}

	if t.Date.IsZero() {
		return ErrInvalidDate
	}

	if !checkCategory {
		return nil
	}

	category, ok := ledger.FindCategory(categories, t.Category)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, t.Category)
	}

	if !category.Allows(t.Type) {
		return fmt.Errorf("%w: %s is %s only", ErrCategoryTypeMismatch, category.Name, category.Type)
	}

	return nil
}

func validateCategory(c ledger.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}

	if !c.Type.Valid() {
		return ErrInvalidCategoryType
	}

	return nil
}
