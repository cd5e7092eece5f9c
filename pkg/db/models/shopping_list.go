package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
)

// ShoppingListItem is one suggested purchase inside a generated list.
type ShoppingListItem struct {
	Name           string         `json:"name"`
	Category       enums.Category `json:"category"`
	Quantity       string         `json:"quantity"`
	EstimatedPrice float64        `json:"estimated_price"`
}

// ShoppingListItems serializes the ordered item sequence into a JSON column.
type ShoppingListItems []ShoppingListItem

func (items ShoppingListItems) Value() (driver.Value, error) {
	if items == nil {
		items = ShoppingListItems{}
	}
	return json.Marshal(items)
}

func (items *ShoppingListItems) Scan(value any) error {
	if value == nil {
		*items = ShoppingListItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported shopping list items column type %T", value)
	}
}

// ShoppingList is an AI-generated, budget-bound list owned by a user.
// Immutable once created.
type ShoppingList struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Budget         float64           `gorm:"not null" json:"budget"`
	Items          ShoppingListItems `gorm:"type:jsonb" json:"items"`
	TotalEstimated float64           `gorm:"column:total_estimated;not null" json:"total_estimated"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (s *ShoppingList) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
