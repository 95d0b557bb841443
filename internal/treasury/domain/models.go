// Package domain contains persistence models for the value-transfer ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Account tracks the spendable balance held by one principal.
type Account struct {
	Principal string    `json:"principal" gorm:"primaryKey;type:text"`
	Balance   uint64    `json:"balance" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "treasury_accounts" }

// TransferRecord is the immutable journal line for one completed movement.
type TransferRecord struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	FromPrincipal string       `json:"from_principal" gorm:"type:text;not null;index"`
	ToPrincipal   string       `json:"to_principal" gorm:"type:text;not null;index"`
	Amount        uint64       `json:"amount" gorm:"not null"`
	Memo          string       `json:"memo" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null"`
}

// TableName sets the database table name.
func (TransferRecord) TableName() string { return "treasury_transfers" }
