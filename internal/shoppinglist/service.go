package shoppinglist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartspend-ai/smartspend-backend/internal/ai"
	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
	pkgerrors "github.com/smartspend-ai/smartspend-backend/pkg/errors"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
	"github.com/smartspend-ai/smartspend-backend/pkg/metrics"
)

// historyBillWindow bounds how far back item history reaches when building
// the generation prompt.
const historyBillWindow = 5

// listHistoryLimit caps how many past lists List returns.
const listHistoryLimit = 10

// Service generates budget-bound shopping lists and serves past ones.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID, budget float64) (*models.ShoppingList, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error)
}

type listRepository interface {
	Create(ctx context.Context, list *models.ShoppingList) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ShoppingList, error)
}

type listGenerator interface {
	GenerateList(ctx context.Context, budget float64, frequentItems []string) ([]ai.SuggestedItem, error)
}

type itemHistory interface {
	FrequentItemNames(ctx context.Context, userID uuid.UUID, billLimit int) ([]string, error)
}

// ServiceParams bundles the shopping list service dependencies.
type ServiceParams struct {
	Repo      listRepository
	Generator listGenerator
	History   itemHistory
	Pipeline  *metrics.PipelineMetrics
	Logger    *logger.Logger
}

type service struct {
	repo      listRepository
	generator listGenerator
	history   itemHistory
	pipeline  *metrics.PipelineMetrics
	logg      *logger.Logger
}

// NewService validates the dependency bundle and returns a list service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("shoppinglist: repository is required")
	}
	if params.Generator == nil {
		return nil, errors.New("shoppinglist: generator is required")
	}
	if params.History == nil {
		return nil, errors.New("shoppinglist: item history is required")
	}
	if params.Logger == nil {
		return nil, errors.New("shoppinglist: logger is required")
	}
	return &service{
		repo:      params.Repo,
		generator: params.Generator,
		history:   params.History,
		pipeline:  params.Pipeline,
		logg:      params.Logger,
	}, nil
}

// Generate asks the model for a list within the budget, drops any proposed
// item that would push the running total over it, and persists the result.
// The stored TotalEstimated is the exact sum of the kept items and never
// exceeds the budget.
func (s *service) Generate(ctx context.Context, userID uuid.UUID, budget float64) (*models.ShoppingList, error) {
	ctx = s.logg.WithUserID(ctx, userID.String())

	if budget <= 0 {
		s.pipeline.IncListsRejected("invalid_budget")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget must be greater than zero")
	}

	frequent, err := s.history.FrequentItemNames(ctx, userID, historyBillWindow)
	if err != nil {
		return nil, err
	}

	suggested, err := s.generator.GenerateList(ctx, budget, frequent)
	if err != nil {
		s.pipeline.IncListsRejected("generation_failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "shopping list generation failed")
	}

	items, total := fitToBudget(suggested, budget)
	if len(items) == 0 {
		s.pipeline.IncListsRejected("nothing_within_budget")
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "generated list had no items within the budget")
	}

	list := &models.ShoppingList{
		UserID:         userID,
		Budget:         budget,
		Items:          items,
		TotalEstimated: total,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save shopping list")
	}

	s.pipeline.IncListsGenerated()
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"list_id":         list.ID.String(),
		"items":           len(items),
		"dropped":         len(suggested) - len(items),
		"budget":          budget,
		"total_estimated": total,
	}), "shopping list generated")
	return list, nil
}

// fitToBudget walks the proposed items in order, keeping each one whose price
// still fits under the budget and dropping the rest.
func fitToBudget(suggested []ai.SuggestedItem, budget float64) (models.ShoppingListItems, float64) {
	limit := decimal.NewFromFloat(budget)
	running := decimal.Zero
	items := make(models.ShoppingListItems, 0, len(suggested))
	for _, proposal := range suggested {
		name := strings.TrimSpace(proposal.Name)
		if name == "" || proposal.EstimatedPrice <= 0 {
			continue
		}
		price := decimal.NewFromFloat(proposal.EstimatedPrice)
		if running.Add(price).GreaterThan(limit) {
			continue
		}
		running = running.Add(price)
		quantity := strings.TrimSpace(proposal.Quantity)
		if quantity == "" {
			quantity = "1 unit"
		}
		items = append(items, models.ShoppingListItem{
			Name:           name,
			Category:       enums.NormalizeCategory(proposal.Category),
			Quantity:       quantity,
			EstimatedPrice: proposal.EstimatedPrice,
		})
	}
	return items, running.Round(2).InexactFloat64()
}

// List returns the user's most recent lists, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	lists, err := s.repo.ListByUser(ctx, userID, listHistoryLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list shopping lists")
	}
	return lists, nil
}
