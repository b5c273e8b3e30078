package ledger

import (
	"slices"
	"time"

	"github.com/GustavoCaso/finbot/internal/filter"
)

// State is the full ledger: both collections plus the active filter.
// Mutations return a new State and never touch the receiver's slices, so a
// State handed to a reader stays valid while a writer moves on.
type State struct {
	Transactions []Transaction
	Categories   []Category
	Filter       filter.Filter
}

// NewState returns a state seeded with the default categories and sample
// transactions.
func NewState() State {
	return State{
		Transactions: SampleTransactions(),
		Categories:   DefaultCategories(),
		Filter:       filter.Default(),
	}
}

// AddTransaction prepends t, newest insertion first.
func (s State) AddTransaction(t Transaction) State {
	transactions := make([]Transaction, 0, len(s.Transactions)+1)
	transactions = append(transactions, t)
	transactions = append(transactions, s.Transactions...)

	s.Transactions = transactions
	return s
}

// UpdateTransaction merges patch into the transaction with the given id.
func (s State) UpdateTransaction(id string, patch TransactionPatch) (State, Transaction, error) {
	idx := s.transactionIndex(id)
	if idx < 0 {
		return s, Transaction{}, &NotFoundError{Kind: "transaction", ID: id}
	}

	updated := s.Transactions[idx].Apply(patch)

	transactions := slices.Clone(s.Transactions)
	transactions[idx] = updated

	s.Transactions = transactions
	return s, updated, nil
}

// DeleteTransaction removes the transaction with the given id.
func (s State) DeleteTransaction(id string) (State, error) {
	idx := s.transactionIndex(id)
	if idx < 0 {
		return s, &NotFoundError{Kind: "transaction", ID: id}
	}

	s.Transactions = slices.Delete(slices.Clone(s.Transactions), idx, idx+1)
	return s, nil
}

// Transaction returns the transaction with the given id.
func (s State) Transaction(id string) (Transaction, bool) {
	idx := s.transactionIndex(id)
	if idx < 0 {
		return Transaction{}, false
	}
	return s.Transactions[idx], true
}

func (s State) transactionIndex(id string) int {
	return slices.IndexFunc(s.Transactions, func(t Transaction) bool {
		return t.ID == id
	})
}

// AddCategory appends c.
func (s State) AddCategory(c Category) State {
	categories := make([]Category, 0, len(s.Categories)+1)
	categories = append(categories, s.Categories...)
	categories = append(categories, c)

	s.Categories = categories
	return s
}

// UpdateCategory merges patch into the category with the given id.
func (s State) UpdateCategory(id string, patch CategoryPatch) (State, Category, error) {
	idx := s.categoryIndex(id)
	if idx < 0 {
		return s, Category{}, &NotFoundError{Kind: "category", ID: id}
	}

	updated := s.Categories[idx].Apply(patch)

	categories := slices.Clone(s.Categories)
	categories[idx] = updated

	s.Categories = categories
	return s, updated, nil
}

// DeleteCategory removes the category with the given id. Transactions keep
// referencing it; queries treat the reference as dangling.
func (s State) DeleteCategory(id string) (State, error) {
	idx := s.categoryIndex(id)
	if idx < 0 {
		return s, &NotFoundError{Kind: "category", ID: id}
	}

	s.Categories = slices.Delete(slices.Clone(s.Categories), idx, idx+1)
	return s, nil
}

// Category returns the category with the given id.
func (s State) Category(id string) (Category, bool) {
	return FindCategory(s.Categories, id)
}

func (s State) categoryIndex(id string) int {
	return slices.IndexFunc(s.Categories, func(c Category) bool {
		return c.ID == id
	})
}

// SetFilter patches the active filter.
func (s State) SetFilter(patch filter.Patch) State {
	s.Filter = s.Filter.Apply(patch)
	return s
}

// ReplaceFilter swaps the active filter wholesale.
func (s State) ReplaceFilter(f filter.Filter) State {
	s.Filter = f
	return s
}

// Filtered applies the active filter.
func (s State) Filtered(now time.Time) []Transaction {
	return ApplyFilter(s.Transactions, s.Categories, s.Filter, now)
}

// Summary totals the filtered transactions.
func (s State) Summary(now time.Time) Summary {
	return Summarize(s.Filtered(now))
}

// CategoryChart is the per-category expense breakdown of the filtered transactions.
func (s State) CategoryChart(now time.Time) ChartData {
	return CategoryBreakdown(s.Filtered(now), s.Categories).ToChartData()
}

// MonthlyChart is the six month income/expense series of the filtered transactions.
func (s State) MonthlyChart(now time.Time) ChartData {
	return MonthlySeries(s.Filtered(now), now).ToChartData()
}
