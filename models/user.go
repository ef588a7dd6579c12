package models

import "time"

type User struct {
	Login     string    `gorm:"column:login;primaryKey;type:varchar(50)" json:"login"`
	Password  string    `gorm:"column:password;type:varchar(64);not null" json:"-"`
	PhoneNum  string    `gorm:"column:phoneNum;type:varchar(16)" json:"phone_num"`
	FavItems  string    `gorm:"column:favItems;type:text" json:"fav_items"`
	Type      string    `gorm:"column:type;type:varchar(10);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
