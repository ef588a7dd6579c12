package models

import "time"

// LineItem is one menu item attached to one order, keyed by
// (orderid, itemName). Price is snapshotted when the item is added, so later
// catalog re-pricing never changes an existing order's total.
type LineItem struct {
	OrderID     uint      `gorm:"column:orderid;primaryKey;autoIncrement:false" json:"order_id"`
	ItemName    string    `gorm:"column:itemName;primaryKey;type:varchar(50)" json:"item_name"`
	MenuItem    MenuItem  `gorm:"foreignKey:ItemName;references:ItemName;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Price       float64   `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Status      string    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Comments    string    `gorm:"column:comments;type:text" json:"comments"`
	LastUpdated time.Time `gorm:"column:lastUpdated;not null" json:"last_updated"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (LineItem) TableName() string {
	return "item_status"
}
