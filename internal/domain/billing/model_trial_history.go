package billing

import "time"

// TrialHistory records that an account has used its one trial, ever.
// The row outlives the trial itself; its existence blocks a second trial.
type TrialHistory struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	AccountID       string     `gorm:"type:uuid;not null;index:idx_trial_history_account_id" json:"account_id"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	ConvertedToPaid bool       `gorm:"not null;default:false" json:"converted_to_paid"`
}
