package billing

// Trial lifecycle statuses as stored on credit_accounts.trial_status.
const (
	TrialStatusNone      = "none"
	TrialStatusActive    = "active"
	TrialStatusUsed      = "used"
	TrialStatusExpired   = "expired"
	TrialStatusCancelled = "cancelled"
	TrialStatusConverted = "converted"
)

// TrialExhausted reports whether a trial was started at some point and is
// no longer running. Such accounts must never be offered another trial.
func TrialExhausted(status string) bool {
	switch status {
	case TrialStatusUsed, TrialStatusExpired, TrialStatusCancelled, TrialStatusConverted:
		return true
	default:
		return false
	}
}
