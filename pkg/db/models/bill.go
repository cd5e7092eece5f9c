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

// PlatformPrice is one platform's quote for a line item, embedded in the
// bill's item document.
type PlatformPrice struct {
	Platform enums.Platform `json:"platform"`
	Price    float64        `json:"price"`
	URL      string         `json:"url,omitempty"`
	Savings  float64        `json:"savings"`
}

// PlatformRecommendation scores a platform for a line item's category.
type PlatformRecommendation struct {
	Platform     enums.Platform `json:"platform"`
	Reason       string         `json:"reason"`
	Score        float64        `json:"score"`
	DeliveryTime string         `json:"delivery_time"`
}

// LineItem is one purchased item within a bill, with its cross-platform
// comparison. Stored as part of the bill's JSON item document so the bill
// persists as a single atomic row write.
type LineItem struct {
	Name                 string                   `json:"name"`
	Category             enums.Category           `json:"category"`
	Quantity             string                   `json:"quantity"`
	OriginalPrice        float64                  `json:"original_price"`
	PlatformPrices       []PlatformPrice          `json:"platform_prices"`
	BestPrice            float64                  `json:"best_price"`
	MaxSavings           float64                  `json:"max_savings"`
	RecommendedPlatforms []PlatformRecommendation `json:"recommended_platforms,omitempty"`
}

// LineItems serializes the ordered item sequence into a single JSON column.
type LineItems []LineItem

func (items LineItems) Value() (driver.Value, error) {
	if items == nil {
		items = LineItems{}
	}
	return json.Marshal(items)
}

func (items *LineItems) Scan(value any) error {
	if value == nil {
		*items = LineItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported line items column type %T", value)
	}
}

// Bill is a processed receipt owned by a user. Immutable once created.
type Bill struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount  float64          `gorm:"column:total_amount;not null" json:"total_amount"`
	TotalSavings float64          `gorm:"column:total_savings;not null" json:"total_savings_potential"`
	Items        LineItems        `gorm:"type:jsonb" json:"items"`
	Status       enums.BillStatus `gorm:"type:text;not null" json:"status"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"upload_date"`
}

func (b *Bill) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = enums.BillStatusCompleted
	}
	return nil
}
