package bills

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
)

// Repository exposes bill persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a bills repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a fully computed bill as a single row.
func (r *Repository) Create(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// ListByUser returns the user's bills, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Bill, error) {
	var list []models.Bill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindByIDForUser loads a single bill scoped to its owner.
func (r *Repository) FindByIDForUser(ctx context.Context, billID, userID uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", billID, userID).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}
