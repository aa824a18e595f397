package sqlite

import "time"

type ItemModel struct {
	ID          int64  `gorm:"primaryKey"`
	Type        string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"not null"`
	Description string
	Category    string
	Tags        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ItemModel) TableName() string { return "items" }

type ItemTypeModel struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

func (ItemTypeModel) TableName() string { return "item_types" }

type AdminModel struct {
	ID        int64  `gorm:"primaryKey"`
	Username  string `gorm:"not null;uniqueIndex"`
	PIN       string `gorm:"column:pin;not null"`
	CreatedAt time.Time
}

func (AdminModel) TableName() string { return "admin" }
