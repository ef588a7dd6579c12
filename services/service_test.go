package services_test

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/models"
	"github.com/cafesys/cafe-backend/services"
)

var (
	asManager  = auth.Identity{Login: "boss", Role: auth.RoleManager}
	asEmployee = auth.Identity{Login: "worker", Role: auth.RoleEmployee}
	asAlice    = auth.Identity{Login: "alice", Role: auth.RoleCustomer}
	asBob      = auth.Identity{Login: "bob", Role: auth.RoleCustomer}
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared in-memory database: every pooled connection must see
	// the same store, and every test gets its own.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.MenuItem{}, &models.Order{}, &models.LineItem{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedMenu(t *testing.T, db *gorm.DB, items ...models.MenuItem) {
	t.Helper()
	catalog := services.NewCatalogService(db)
	for _, item := range items {
		if err := catalog.AddItem(asManager, item); err != nil {
			t.Fatalf("failed to seed menu item %s: %v", item.ItemName, err)
		}
	}
}

func seedLatte(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedMenu(t, db,
		models.MenuItem{ItemName: "Latte", Type: "Drinks", Price: 3.50},
		models.MenuItem{ItemName: "Muffin", Type: "Food", Price: 2.25},
	)
}
