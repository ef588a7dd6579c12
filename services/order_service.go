package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/models"
)

// OrderService is the order ledger: order lifecycle, the paid flag, and the
// running total. The total only ever changes through adjustTotal, a
// server-side increment, so concurrent edits to the same order cannot lose
// updates.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// adjustTotal applies a delta to an order's total inside the caller's
// transaction. The arithmetic runs in the store, never read-modify-write in
// Go.
func adjustTotal(tx *gorm.DB, orderID uint, delta float64) error {
	res := tx.Model(&models.Order{}).Where("orderid = ?", orderID).
		UpdateColumn("total", gorm.Expr("ROUND(total + ?, 2)", delta))
	if res.Error != nil {
		return res.Error
	}
	// MySQL reports zero affected rows for a no-change update, so confirm
	// absence before treating this as a missing order.
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Order{}).Where("orderid = ?", orderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (s *OrderService) CreateOrder(id auth.Identity) (uint, error) {
	if err := auth.Authorize(id, auth.ActionCreateOrder, nil); err != nil {
		return 0, classify(err)
	}
	order := models.Order{
		Login:    id.Login,
		Paid:     false,
		Received: time.Now(),
		Total:    0,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return 0, classify(err)
	}
	return order.OrderID, nil
}

func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("orderid = ?", orderID).First(&order).Error; err != nil {
		return nil, classify(err)
	}
	return &order, nil
}

func (s *OrderService) GetTotal(orderID uint) (float64, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return 0, err
	}
	return order.Total, nil
}

// AdjustTotal applies a delta in its own transaction. Composite operations
// (item add/remove, catalog cascade) use the transactional form instead.
func (s *OrderService) AdjustTotal(orderID uint, delta float64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return adjustTotal(tx, orderID, delta)
	})
	return classify(err)
}

func (s *OrderService) SetPaid(id auth.Identity, orderID uint, paid bool) error {
	if err := auth.Authorize(id, auth.ActionSetPaid, nil); err != nil {
		return classify(err)
	}
	res := s.db.Model(&models.Order{}).Where("orderid = ?", orderID).
		UpdateColumn("paid", paid)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelOrder deletes the order's line items and then the order row in one
// transaction. The returned bool confirms the order is gone, re-queried
// after commit.
func (s *OrderService) CancelOrder(id auth.Identity, orderID uint) (bool, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return false, err
	}
	target := auth.OrderTarget{OwnerLogin: order.Login, Paid: order.Paid}
	if err := auth.Authorize(id, auth.ActionEditOrder, target); err != nil {
		return false, classify(err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return cancelOrder(tx, orderID)
	})
	if err != nil {
		return false, classify(err)
	}

	var count int64
	if err := s.db.Model(&models.Order{}).Where("orderid = ?", orderID).
		Count(&count).Error; err != nil {
		return false, classify(err)
	}
	return count == 0, nil
}

// cancelOrder removes line items before the order row so no orphaned line
// item can ever exist.
func cancelOrder(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("orderid = ?", orderID).Delete(&models.LineItem{}).Error; err != nil {
		return err
	}
	res := tx.Where("orderid = ?", orderID).Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsReady reports whether every line item on the order is ready. An order
// with no line items is vacuously ready.
func (s *OrderService) IsReady(id auth.Identity, orderID uint) (bool, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return false, err
	}
	target := auth.OrderTarget{OwnerLogin: order.Login, Paid: order.Paid}
	if err := auth.Authorize(id, auth.ActionReadOrder, target); err != nil {
		return false, classify(err)
	}

	var notReady int64
	if err := s.db.Model(&models.LineItem{}).
		Where("orderid = ? AND status <> ?", orderID, ItemStatusReady).
		Count(&notReady).Error; err != nil {
		return false, classify(err)
	}
	return notReady == 0, nil
}

// FinalizeEdit closes an order-editing batch: an order whose total has been
// driven to zero or below is cancelled rather than left empty. Returns
// whether the order was cancelled.
func (s *OrderService) FinalizeEdit(id auth.Identity, orderID uint) (bool, error) {
	total, err := s.GetTotal(orderID)
	if err != nil {
		return false, err
	}
	if total > 0 {
		return false, nil
	}
	cancelled, err := s.CancelOrder(id, orderID)
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

// OrderSummary is an order with its line items in insertion order.
type OrderSummary struct {
	Order models.Order      `json:"order"`
	Items []models.LineItem `json:"items"`
}

func (s *OrderService) Summary(id auth.Identity, orderID uint) (*OrderSummary, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
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
	return &OrderSummary{Order: *order, Items: items}, nil
}

// RecentOrders returns a user's most recent orders, newest first, optionally
// unpaid only. Readable by the owner or by staff.
func (s *OrderService) RecentOrders(id auth.Identity, login string, unpaidOnly bool, limit int) ([]models.Order, error) {
	target := auth.OrderTarget{OwnerLogin: login}
	if err := auth.Authorize(id, auth.ActionReadOrder, target); err != nil {
		return nil, classify(err)
	}

	q := s.db.Where("login = ?", login)
	if unpaidOnly {
		q = q.Where("paid = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var orders []models.Order
	if err := q.Order("orderid desc").Find(&orders).Error; err != nil {
		return nil, classify(err)
	}
	return orders, nil
}

// HistorySince lists every order received after the cutoff, for the staff
// kitchen and billing views.
func (s *OrderService) HistorySince(id auth.Identity, cutoff time.Time, unpaidOnly bool) ([]models.Order, error) {
	if !id.Role.CanEditAnyOrder() {
		return nil, classify(&auth.Denied{Reason: "staff access required"})
	}

	q := s.db.Where("timeStampRecieved >= ?", cutoff)
	if unpaidOnly {
		q = q.Where("paid = ?", false)
	}
	var orders []models.Order
	if err := q.Order("orderid desc").Find(&orders).Error; err != nil {
		return nil, classify(err)
	}
	return orders, nil
}
