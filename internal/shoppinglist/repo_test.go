package shoppinglist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
)

func setupListsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.ShoppingList{}))
	return db
}

func seedList(t *testing.T, repo *Repository, userID uuid.UUID, created time.Time) *models.ShoppingList {
	t.Helper()

	list := &models.ShoppingList{
		UserID: userID,
		Budget: 500,
		Items: models.ShoppingListItems{
			{Name: "Milk", Category: enums.CategoryDairy, Quantity: "1 l", EstimatedPrice: 60},
		},
		TotalEstimated: 60,
		CreatedAt:      created,
	}
	require.NoError(t, repo.Create(context.Background(), list))
	return list
}

func TestShoppingListRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(setupListsTestDB(t))
	userID := uuid.New()

	list := seedList(t, repo, userID, time.Now().UTC())
	require.NotEqual(t, uuid.Nil, list.ID)

	lists, err := repo.ListByUser(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Items, 1)
	assert.Equal(t, "Milk", lists[0].Items[0].Name)
	assert.Equal(t, 60.0, lists[0].TotalEstimated)
}

func TestShoppingListRepositoryLimitAndOrder(t *testing.T) {
	repo := NewRepository(setupListsTestDB(t))
	userID := uuid.New()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	var newest *models.ShoppingList
	for i := 0; i < 12; i++ {
		newest = seedList(t, repo, userID, base.Add(time.Duration(i)*time.Hour))
	}

	lists, err := repo.ListByUser(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, lists, 10)
	assert.Equal(t, newest.ID, lists[0].ID)
}
