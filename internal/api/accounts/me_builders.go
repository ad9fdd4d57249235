package accounts

import (
	"time"

	"agent-dashboard/internal/domain/billing"
	"agent-dashboard/internal/domain/tiers"
)

func BuildTierDTO(acct billing.CreditAccount) *TierDTO {
	if acct.Tier == "" || acct.Tier == tiers.TierNone {
		return nil
	}
	t := tiers.Get(acct.Tier)
	return &TierDTO{
		Name:         t.Name,
		Credits:      t.MonthlyCredits,
		ProjectLimit: t.ProjectLimit,
	}
}

func BuildTrialDTO(now time.Time, acct billing.CreditAccount) *TrialDTO {
	if acct.TrialStatus == "" || acct.TrialStatus == billing.TrialStatusNone {
		return nil
	}

	dto := &TrialDTO{
		Status: acct.TrialStatus,
		EndsAt: acct.TrialEndsAt,
	}

	if acct.TrialStatus == billing.TrialStatusActive && acct.TrialEndsAt != nil {
		d := int(acct.TrialEndsAt.Sub(now).Hours() / 24)
		if d < 0 {
			d = 0
		}
		dto.DaysLeft = &d
	}

	return dto
}
