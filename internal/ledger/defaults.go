package ledger

import "time"

// DefaultCategories returns the categories a new ledger starts with.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Salary", Color: "#10B981", Icon: "briefcase", Type: CategoryIncome},
		{ID: "2", Name: "Freelance", Color: "#6366F1", Icon: "laptop", Type: CategoryIncome},
		{ID: "3", Name: "Investments", Color: "#F59E0B", Icon: "trending-up", Type: CategoryIncome},
		{ID: "4", Name: "Food", Color: "#EF4444", Icon: "utensils", Type: CategoryExpense},
		{ID: "5", Name: "Housing", Color: "#8B5CF6", Icon: "home", Type: CategoryExpense},
		{ID: "6", Name: "Transportation", Color: "#3B82F6", Icon: "car", Type: CategoryExpense},
		{ID: "7", Name: "Entertainment", Color: "#EC4899", Icon: "film", Type: CategoryExpense},
		{ID: "8", Name: "Shopping", Color: "#F97316", Icon: "shopping-bag", Type: CategoryExpense},
		{ID: "9", Name: "Health", Color: "#14B8A6", Icon: "activity", Type: CategoryExpense},
		{ID: "10", Name: "Other", Color: "#6B7280", Icon: "more-horizontal", Type: CategoryBoth},
	}
}

// SampleTransactions returns the demo transactions a new ledger starts with.
func SampleTransactions() []Transaction {
	return []Transaction{
		{
			ID:          "1",
			Amount:      3500,
			Description: "Monthly Salary",
			Category:    "1",
			Date:        NewDate(2025, time.January, 1),
			Type:        Income,
			CreatedAt:   time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Amount:      800,
			Description: "Freelance Project",
			Category:    "2",
			Date:        NewDate(2025, time.January, 15),
			Type:        Income,
			CreatedAt:   time.Date(2025, time.January, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			Amount:      1200,
			Description: "Rent Payment",
			Category:    "5",
			Date:        NewDate(2025, time.January, 5),
			Type:        Expense,
			CreatedAt:   time.Date(2025, time.January, 5, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:          "4",
			Amount:      85,
			Description: "Grocery Shopping",
			Category:    "4",
			Date:        NewDate(2025, time.January, 10),
			Type:        Expense,
			CreatedAt:   time.Date(2025, time.January, 10, 18, 45, 0, 0, time.UTC),
		},
		{
			ID:          "5",
			Amount:      150,
			Description: "Concert Tickets",
			Category:    "7",
			Date:        NewDate(2025, time.January, 20),
			Type:        Expense,
			CreatedAt:   time.Date(2025, time.January, 20, 20, 0, 0, 0, time.UTC),
		},
	}
}
