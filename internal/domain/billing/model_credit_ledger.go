package billing

import "time"

// Ledger entry types.
const (
	LedgerTypeGrant      = "grant"
	LedgerTypePurchase   = "purchase"
	LedgerTypeUsage      = "usage"
	LedgerTypeAdjustment = "adjustment"
)

// CreditLedger is the append-only record of every balance change.
type CreditLedger struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AccountID    string    `gorm:"type:uuid;not null;index:idx_credit_ledger_account_id" json:"account_id"`
	Amount       float64   `gorm:"not null" json:"amount"`
	BalanceAfter float64   `gorm:"not null" json:"balance_after"`
	Type         string    `gorm:"not null" json:"type"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}
