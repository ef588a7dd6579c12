package models

import "time"

// MenuItem is keyed by its name; line items reference it by name, not by a
// surrogate id.
type MenuItem struct {
	ItemName    string    `gorm:"column:itemName;primaryKey;type:varchar(50)" json:"item_name"`
	Type        string    `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Price       float64   `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	ImageURL    string    `gorm:"column:imageURL;type:varchar(256)" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu"
}
