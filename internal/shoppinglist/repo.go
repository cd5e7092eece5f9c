package shoppinglist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
)

// Repository exposes shopping list persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shopping list repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a generated list as a single row.
func (r *Repository) Create(ctx context.Context, list *models.ShoppingList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// ListByUser returns the user's most recent lists, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}
