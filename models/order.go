package models

import "time"

type Order struct {
	OrderID  uint      `gorm:"column:orderid;primaryKey" json:"order_id"`
	Login    string    `gorm:"column:login;type:varchar(50);not null;index" json:"login"`
	User     User      `gorm:"foreignKey:Login;references:Login;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Paid     bool      `gorm:"column:paid;not null;default:false" json:"paid"`
	Received time.Time `gorm:"column:timeStampRecieved;not null" json:"timestamp_received"`
	// Total is maintained incrementally, always inside the same transaction
	// as the line-item write that caused the change.
	Total     float64    `gorm:"column:total;type:decimal(10,2);not null;default:0" json:"total"`
	LineItems []LineItem `gorm:"foreignKey:OrderID;references:OrderID" json:"line_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
