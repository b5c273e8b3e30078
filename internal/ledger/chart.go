package ledger

// ChartData is the shape handed to chart renderers: a label per point and one
// or more datasets with parallel values.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderColor     []string  `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

const (
	incomeColor      = "#10B981"
	incomeFillColor  = "rgba(16, 185, 129, 0.5)"
	expenseColor     = "#EF4444"
	expenseFillColor = "rgba(239, 68, 68, 0.5)"

	pieBorderWidth = 1
	barBorderWidth = 2
)

// ToChartData shapes the breakdown as a single pie dataset coloured by category.
func (c CategoryTotals) ToChartData() ChartData {
	return ChartData{
		Labels: c.Labels,
		Datasets: []Dataset{
			{
				Label:           "Expenses by Category",
				Data:            c.Amounts,
				BackgroundColor: c.Colors,
				BorderColor:     c.Colors,
				BorderWidth:     pieBorderWidth,
			},
		},
	}
}

// ToChartData shapes the series as an income and an expense bar dataset.
func (m MonthlyTotals) ToChartData() ChartData {
	return ChartData{
		Labels: m.Labels,
		Datasets: []Dataset{
			{
				Label:           "Income",
				Data:            m.Income,
				BackgroundColor: []string{incomeFillColor},
				BorderColor:     []string{incomeColor},
				BorderWidth:     barBorderWidth,
			},
			{
				Label:           "Expenses",
				Data:            m.Expense,
				BackgroundColor: []string{expenseFillColor},
				BorderColor:     []string{expenseColor},
				BorderWidth:     barBorderWidth,
			},
		},
	}
}
