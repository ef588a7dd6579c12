package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/models"
	"github.com/cafesys/cafe-backend/utils"
)

// CatalogService owns the menu: item lookup for pricing and the
// manager-gated mutations, including the cascade when an item is removed
// while orders still reference it.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ItemExists(name string) bool {
	var count int64
	s.db.Model(&models.MenuItem{}).Where("itemName = ?", name).Count(&count)
	return count > 0
}

func (s *CatalogService) GetItem(name string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.Where("itemName = ?", name).First(&item).Error; err != nil {
		return nil, classify(err)
	}
	return &item, nil
}

func (s *CatalogService) GetPrice(name string) (float64, error) {
	item, err := s.GetItem(name)
	if err != nil {
		return 0, err
	}
	return item.Price, nil
}

func (s *CatalogService) ListItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Order("itemName asc").Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (s *CatalogService) ListByType(itemType string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Where("type = ?", itemType).Order("itemName asc").Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

// SearchByName matches items whose name contains the pattern.
func (s *CatalogService) SearchByName(pattern string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Where("itemName LIKE ?", "%"+pattern+"%").
		Order("itemName asc").Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (s *CatalogService) AddItem(id auth.Identity, item models.MenuItem) error {
	if err := auth.Authorize(id, auth.ActionManageMenu, nil); err != nil {
		return classify(err)
	}
	if strings.TrimSpace(item.ItemName) == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	item.Price = utils.RoundAmount(item.Price)
	if err := s.db.Create(&item).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (s *CatalogService) UpdatePrice(id auth.Identity, name string, price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	return s.updateField(id, name, "price", utils.RoundAmount(price), func(item *models.MenuItem) bool {
		return item.Price == utils.RoundAmount(price)
	})
}

func (s *CatalogService) UpdateType(id auth.Identity, name, itemType string) error {
	return s.updateField(id, name, "type", itemType, func(item *models.MenuItem) bool {
		return item.Type == itemType
	})
}

func (s *CatalogService) UpdateDescription(id auth.Identity, name, description string) error {
	return s.updateField(id, name, "description", description, func(item *models.MenuItem) bool {
		return item.Description == description
	})
}

func (s *CatalogService) UpdateImageURL(id auth.Identity, name, imageURL string) error {
	return s.updateField(id, name, "imageURL", imageURL, func(item *models.MenuItem) bool {
		return item.ImageURL == imageURL
	})
}

// updateField writes a single catalog column. Writing the current value is a
// no-op so redundant edits never touch the row or its timestamp.
func (s *CatalogService) updateField(id auth.Identity, name, column string, value any, unchanged func(*models.MenuItem) bool) error {
	if err := auth.Authorize(id, auth.ActionManageMenu, nil); err != nil {
		return classify(err)
	}
	item, err := s.GetItem(name)
	if err != nil {
		return err
	}
	if unchanged(item) {
		return nil
	}
	if err := s.db.Model(&models.MenuItem{}).Where("itemName = ?", name).
		Update(column, value).Error; err != nil {
		return classify(err)
	}
	return nil
}

// DeleteItem removes a menu item together with every line item that
// references it, in one transaction: each affected order's total drops by the
// snapshot price of each removed line, the references are deleted, then the
// catalog row. Any residual reference aborts the whole unit.
func (s *CatalogService) DeleteItem(id auth.Identity, name string) error {
	if err := auth.Authorize(id, auth.ActionManageMenu, nil); err != nil {
		return classify(err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.Where("itemName = ?", name).First(&item).Error; err != nil {
			return err
		}

		var refs []models.LineItem
		if err := tx.Where("itemName = ?", name).Find(&refs).Error; err != nil {
			return err
		}

		for _, ref := range refs {
			if err := adjustTotal(tx, ref.OrderID, -ref.Price); err != nil {
				return err
			}
		}

		if err := tx.Where("itemName = ?", name).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}

		var residual int64
		if err := tx.Model(&models.LineItem{}).Where("itemName = ?", name).
			Count(&residual).Error; err != nil {
			return err
		}
		if residual > 0 {
			return fmt.Errorf("%w: %d line items still reference %s", ErrStore, residual, name)
		}

		return tx.Where("itemName = ?", name).Delete(&models.MenuItem{}).Error
	})
	return classify(err)
}
