package accounts

import "time"

type Account struct {
	ID        uint   `gorm:"primaryKey"`
	AccountID string `gorm:"type:uuid;default:gen_random_uuid();not null;uniqueIndex:idx_accounts_account_id"`

	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_accounts_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_accounts_google_sub"`
	Role         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
