package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafesys/cafe-backend/services"
)

func TestAddItemUnknownMenuItem(t *testing.T) {
	db := setupTestDB(t)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)

	err = items.AddItem(asAlice, orderID, "Ghost", "")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The failed add must not have touched the total.
	total, err := orders.GetTotal(orderID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestAddItemUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	items := services.NewItemService(db)
	seedLatte(t, db)

	err := items.AddItem(asAlice, 42, "Latte", "")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAddDuplicateLineItem(t *testing.T) {
	db := setupTestDB(t)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)
	require.NoError(t, items.AddItem(asAlice, orderID, "Latte", ""))

	err = items.AddItem(asAlice, orderID, "Latte", "")
	assert.ErrorIs(t, err, services.ErrConflict)

	total, err := orders.GetTotal(orderID)
	require.NoError(t, err)
	assert.Equal(t, 3.50, total, "rejected insert leaves the total alone")
}

func TestRemoveItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)
	require.NoError(t, items.AddItem(asAlice, orderID, "Latte", ""))

	_, err = items.RemoveItem(asAlice, orderID, "Muffin")
	assert.ErrorIs(t, err, services.ErrNotFound)

	total, err := orders.GetTotal(orderID)
	require.NoError(t, err)
	assert.Equal(t, 3.50, total)
}

// The snapshot policy: a line keeps the price it was added at, so catalog
// re-pricing never disturbs an open order's books.
func TestPriceSnapshotSurvivesRepricing(t *testing.T) {
	db := setupTestDB(t)
	catalog := services.NewCatalogService(db)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)
	require.NoError(t, items.AddItem(asAlice, orderID, "Latte", ""))
	require.NoError(t, items.AddItem(asAlice, orderID, "Muffin", ""))

	require.NoError(t, catalog.UpdatePrice(asManager, "Latte", 9.99))

	total, err := orders.GetTotal(orderID)
	require.NoError(t, err)
	assert.Equal(t, 5.75, total, "re-pricing does not rewrite an open order")

	cancelled, err := items.RemoveItem(asAlice, orderID, "Latte")
	require.NoError(t, err)
	assert.False(t, cancelled)

	total, err = orders.GetTotal(orderID)
	require.NoError(t, err)
	assert.Equal(t, 2.25, total, "removal subtracts the snapshot, not the live price")
}

func TestSetStatusToggle(t *testing.T) {
	db := setupTestDB(t)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)
	require.NoError(t, items.AddItem(asAlice, orderID, "Latte", ""))

	err = items.SetStatus(asAlice, orderID, "Latte", true)
	assert.ErrorIs(t, err, services.ErrUnauthorized, "status changes are for staff")

	line, err := items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	assert.Equal(t, services.ItemStatusInProgress, line.Status)
	before := line.LastUpdated

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, items.SetStatus(asEmployee, orderID, "Latte", true))
	line, err = items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	assert.Equal(t, services.ItemStatusReady, line.Status)
	assert.True(t, line.LastUpdated.After(before))

	require.NoError(t, items.SetStatus(asEmployee, orderID, "Latte", false))
	line, err = items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	assert.Equal(t, services.ItemStatusInProgress, line.Status)
}

func TestSetStatusIdempotent(t *testing.T) {
	db := setupTestDB(t)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)
	require.NoError(t, items.AddItem(asAlice, orderID, "Latte", ""))

	line, err := items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	before := line.LastUpdated

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, items.SetStatus(asEmployee, orderID, "Latte", false))

	line, err = items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	assert.True(t, line.LastUpdated.Equal(before), "writing the current status must not bump lastUpdated")
}

func TestSetCommentIdempotent(t *testing.T) {
	db := setupTestDB(t)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)
	require.NoError(t, items.AddItem(asAlice, orderID, "Latte", "oat milk"))

	line, err := items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	before := line.LastUpdated

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, items.SetComment(asAlice, orderID, "Latte", "oat milk"))

	line, err = items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	assert.True(t, line.LastUpdated.Equal(before))

	require.NoError(t, items.SetComment(asAlice, orderID, "Latte", "extra hot"))
	line, err = items.GetLine(asEmployee, orderID, "Latte")
	require.NoError(t, err)
	assert.Equal(t, "extra hot", line.Comments)
	assert.True(t, line.LastUpdated.After(before))
}

func TestListByOrderInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	orders := services.NewOrderService(db)
	items := services.NewItemService(db)
	seedLatte(t, db)

	orderID, err := orders.CreateOrder(asAlice)
	require.NoError(t, err)
	require.NoError(t, items.AddItem(asAlice, orderID, "Muffin", ""))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, items.AddItem(asAlice, orderID, "Latte", ""))

	lines, err := items.ListByOrder(asAlice, orderID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Muffin", lines[0].ItemName)
	assert.Equal(t, "Latte", lines[1].ItemName)
}
