package model

import (
	"time"
)

type TransactionStatus string

const (
	TransactionPending TransactionStatus = "pending"
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

// Transaction is one payment attempt initiated from the bot. Status follows
// what the provider reports to the callback page.
type Transaction struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Reference   string            `gorm:"uniqueIndex;not null" json:"reference"` // provider reference
	CustomerID  *uint             `gorm:"index" json:"customer_id,omitempty"`
	PhoneNumber string            `gorm:"index" json:"phone_number"`
	Amount      int64             `gorm:"not null" json:"amount"` // minor units
	Currency    string            `gorm:"size:3;not null;default:'KES'" json:"currency"`
	Status      TransactionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
