package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/models"
)

// Line item preparation states. The status is a two-way toggle: the kitchen
// can reopen a ready item.
const (
	ItemStatusInProgress = "in_progress"
	ItemStatusReady      = "ready"
)

// ItemService tracks the line items within an order. Every mutation that
// moves money runs the line-item write and the order-total adjustment as one
// transaction; neither half is ever visible without the other.
type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

// editableOrder loads the order inside tx and runs the edit gate against it.
func editableOrder(tx *gorm.DB, id auth.Identity, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := tx.Where("orderid = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	target := auth.OrderTarget{OwnerLogin: order.Login, Paid: order.Paid}
	if err := auth.Authorize(id, auth.ActionEditOrder, target); err != nil {
		return nil, err
	}
	return &order, nil
}

// AddItem attaches a catalog item to the order. The price is snapshotted
// from the catalog at this moment; the insert and the total increment commit
// together or not at all.
func (s *ItemService) AddItem(id auth.Identity, orderID uint, itemName, comment string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := editableOrder(tx, id, orderID); err != nil {
			return err
		}

		var item models.MenuItem
		if err := tx.Where("itemName = ?", itemName).First(&item).Error; err != nil {
			return err
		}

		line := models.LineItem{
			OrderID:     orderID,
			ItemName:    item.ItemName,
			Price:       item.Price,
			Status:      ItemStatusInProgress,
			Comments:    comment,
			LastUpdated: time.Now(),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		return adjustTotal(tx, orderID, item.Price)
	})
	return classify(err)
}

// RemoveItem deletes the line and subtracts its snapshot price from the
// order's total in one transaction. An order whose total drops to zero or
// below is cancelled in the same transaction; the returned bool reports that.
func (s *ItemService) RemoveItem(id auth.Identity, orderID uint, itemName string) (bool, error) {
	cancelled := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := editableOrder(tx, id, orderID); err != nil {
			return err
		}

		var line models.LineItem
		if err := tx.Where("orderid = ? AND itemName = ?", orderID, itemName).
			First(&line).Error; err != nil {
			return err
		}
		if err := tx.Where("orderid = ? AND itemName = ?", orderID, itemName).
			Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		if err := adjustTotal(tx, orderID, -line.Price); err != nil {
			return err
		}

		var order models.Order
		if err := tx.Where("orderid = ?", orderID).First(&order).Error; err != nil {
			return err
		}
		if order.Total <= 0 {
			cancelled = true
			return cancelOrder(tx, orderID)
		}
		return nil
	})
	if err != nil {
		return false, classify(err)
	}
	return cancelled, nil
}

// SetStatus toggles a line between ready and in progress. Staff only; the
// toggle is deliberately non-monotonic.
func (s *ItemService) SetStatus(id auth.Identity, orderID uint, itemName string, ready bool) error {
	if err := auth.Authorize(id, auth.ActionSetStatus, nil); err != nil {
		return classify(err)
	}

	status := ItemStatusInProgress
	if ready {
		status = ItemStatusReady
	}

	line, err := s.GetLine(id, orderID, itemName)
	if err != nil {
		return err
	}
	if line.Status == status {
		return nil
	}

	err = s.db.Model(&models.LineItem{}).
		Where("orderid = ? AND itemName = ?", orderID, itemName).
		Updates(map[string]any{"status": status, "lastUpdated": time.Now()}).Error
	return classify(err)
}

// SetComment replaces the line's comment. Writing the current comment is a
// no-op and leaves lastUpdated untouched.
func (s *ItemService) SetComment(id auth.Identity, orderID uint, itemName, comment string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := editableOrder(tx, id, orderID); err != nil {
			return err
		}

		var line models.LineItem
		if err := tx.Where("orderid = ? AND itemName = ?", orderID, itemName).
			First(&line).Error; err != nil {
			return err
		}
		if line.Comments == comment {
			return nil
		}
		return tx.Model(&models.LineItem{}).
			Where("orderid = ? AND itemName = ?", orderID, itemName).
			Updates(map[string]any{"comments": comment, "lastUpdated": time.Now()}).Error
	})
	return classify(err)
}

func (s *ItemService) GetLine(id auth.Identity, orderID uint, itemName string) (*models.LineItem, error) {
	var line models.LineItem
	if err := s.db.Where("orderid = ? AND itemName = ?", orderID, itemName).
		First(&line).Error; err != nil {
		return nil, classify(err)
	}
	return &line, nil
}

// ListByOrder returns the order's line items in insertion order.
func (s *ItemService) ListByOrder(id auth.Identity, orderID uint) ([]models.LineItem, error) {
	var order models.Order
	if err := s.db.Where("orderid = ?", orderID).First(&order).Error; err != nil {
		return nil, classify(err)
	}
	target := auth.OrderTarget{OwnerLogin: order.Login, Paid: order.Paid}
	if err := auth.Authorize(id, auth.ActionReadOrder, target); err != nil {
		return nil, classify(err)
	}

	var items []models.LineItem
	if err := s.db.Where("orderid = ?", orderID).
		Order("created_at asc, itemName asc").Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}
