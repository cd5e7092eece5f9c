package insights

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
	pkgerrors "github.com/smartspend-ai/smartspend-backend/pkg/errors"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
)

// monthLabelFormat renders trend buckets as "Jan 2026".
const monthLabelFormat = "Jan 2006"

// frequentItemLimit caps how many item names feed the shopping list prompt.
const frequentItemLimit = 10

// CategorySpend is one row of the category breakdown, largest first.
type CategorySpend struct {
	Category   enums.Category `json:"category"`
	Amount     float64        `json:"amount"`
	Percentage float64        `json:"percentage"`
}

// MonthlySpend is one calendar month's total, in chronological order.
type MonthlySpend struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Snapshot summarizes a user's spending across all their bills.
type Snapshot struct {
	TotalSpending     float64         `json:"total_spending"`
	TotalSavings      float64         `json:"total_savings_potential"`
	BillCount         int             `json:"bill_count"`
	CategoryBreakdown []CategorySpend `json:"category_breakdown"`
	MonthlyTrend      []MonthlySpend  `json:"monthly_trend"`
}

type billReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Bill, error)
}

// Service aggregates persisted bills into spending insights.
type Service interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
	FrequentItemNames(ctx context.Context, userID uuid.UUID, billLimit int) ([]string, error)
}

type service struct {
	bills billReader
	logg  *logger.Logger
}

// NewService returns an insights service reading from the given bill source.
func NewService(bills billReader, logg *logger.Logger) (Service, error) {
	if bills == nil {
		return nil, errors.New("insights: bill reader is required")
	}
	if logg == nil {
		return nil, errors.New("insights: logger is required")
	}
	return &service{bills: bills, logg: logg}, nil
}

// Snapshot computes the user's totals, category breakdown and monthly trend.
// A user with no bills gets a zero snapshot, not an error.
func (s *service) Snapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	bills, err := s.bills.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load bills for insights")
	}

	snapshot := &Snapshot{
		BillCount:         len(bills),
		CategoryBreakdown: []CategorySpend{},
		MonthlyTrend:      []MonthlySpend{},
	}
	if len(bills) == 0 {
		return snapshot, nil
	}

	totalSpending := decimal.Zero
	totalSavings := decimal.Zero
	byCategory := map[enums.Category]decimal.Decimal{}
	byMonth := map[time.Time]decimal.Decimal{}
	for _, bill := range bills {
		totalSpending = totalSpending.Add(decimal.NewFromFloat(bill.TotalAmount))
		totalSavings = totalSavings.Add(decimal.NewFromFloat(bill.TotalSavings))
		for _, item := range bill.Items {
			byCategory[item.Category] = byCategory[item.Category].Add(decimal.NewFromFloat(item.OriginalPrice))
		}
		month := time.Date(bill.CreatedAt.Year(), bill.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[month] = byMonth[month].Add(decimal.NewFromFloat(bill.TotalAmount))
	}

	snapshot.TotalSpending = totalSpending.Round(2).InexactFloat64()
	snapshot.TotalSavings = totalSavings.Round(2).InexactFloat64()
	snapshot.CategoryBreakdown = breakdown(byCategory, totalSpending)
	snapshot.MonthlyTrend = trend(byMonth)
	return snapshot, nil
}

func breakdown(byCategory map[enums.Category]decimal.Decimal, total decimal.Decimal) []CategorySpend {
	rows := make([]CategorySpend, 0, len(byCategory))
	hundred := decimal.NewFromInt(100)
	for category, amount := range byCategory {
		row := CategorySpend{
			Category: category,
			Amount:   amount.Round(2).InexactFloat64(),
		}
		if total.IsPositive() {
			row.Percentage = amount.Mul(hundred).Div(total).Round(2).InexactFloat64()
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func trend(byMonth map[time.Time]decimal.Decimal) []MonthlySpend {
	months := make([]time.Time, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	rows := make([]MonthlySpend, 0, len(months))
	for _, month := range months {
		rows = append(rows, MonthlySpend{
			Month:  month.Format(monthLabelFormat),
			Amount: byMonth[month].Round(2).InexactFloat64(),
		})
	}
	return rows
}

// FrequentItemNames returns the most purchased item names across the user's
// most recent bills, frequency descending. Feeds the shopping list prompt.
func (s *service) FrequentItemNames(ctx context.Context, userID uuid.UUID, billLimit int) ([]string, error) {
	bills, err := s.bills.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load bills for item history")
	}
	if billLimit > 0 && len(bills) > billLimit {
		bills = bills[:billLimit]
	}

	counts := map[string]int{}
	var order []string
	for _, bill := range bills {
		for _, item := range bill.Items {
			if item.Name == "" {
				continue
			}
			if _, seen := counts[item.Name]; !seen {
				order = append(order, item.Name)
			}
			counts[item.Name]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > frequentItemLimit {
		order = order[:frequentItemLimit]
	}
	return order, nil
}
