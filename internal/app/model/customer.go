package model

import (
	"time"
)

// Customer is an end user who pays through the WhatsApp bot.
type Customer struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `json:"name"`
	Email       string    `gorm:"index" json:"email"`
	PhoneNumber string    `gorm:"index" json:"phone_number"` // WhatsApp number, E.164
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
