package models

import (
	"time"
)

type User struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"size:100;not null"        json:"name"`
	Address string  `gorm:"size:200"                 json:"address"`
	Email   string  `gorm:"size:100;unique;not null" json:"email"`
	Orders  []Order `json:"orders,omitempty"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:100;not null"        json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
}

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	OrderDate time.Time `gorm:"not null"                 json:"order_date"`
	Products  []Product `gorm:"many2many:order_products" json:"products,omitempty"`
}

// OrderProduct is the join entity behind Order.Products. Registered with
// SetupJoinTable so rows can also be created and deleted directly.
type OrderProduct struct {
	OrderID   uint `gorm:"primaryKey" json:"order_id"`
	ProductID uint `gorm:"primaryKey" json:"product_id"`
}
