package accounts

import "time"

type TierDTO struct {
	Name         string  `json:"name"`
	Credits      float64 `json:"credits"`
	ProjectLimit int     `json:"project_limit"`
}

type TrialDTO struct {
	Status   string     `json:"status"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	DaysLeft *int       `json:"days_left,omitempty"`
}

type MeResponse struct {
	AccountID    string `json:"account_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AuthProvider string `json:"auth_provider"`
	Role         string `json:"role"`

	Tier     *TierDTO  `json:"tier"`
	Trial    *TrialDTO `json:"trial"`
	Entitled bool      `json:"entitled"`
	Balance  float64   `json:"balance"`
}
