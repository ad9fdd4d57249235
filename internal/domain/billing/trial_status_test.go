package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrialExhausted(t *testing.T) {
	assert.False(t, TrialExhausted(TrialStatusNone))
	assert.False(t, TrialExhausted(TrialStatusActive))
	assert.False(t, TrialExhausted(""))

	assert.True(t, TrialExhausted(TrialStatusUsed))
	assert.True(t, TrialExhausted(TrialStatusExpired))
	assert.True(t, TrialExhausted(TrialStatusCancelled))
	assert.True(t, TrialExhausted(TrialStatusConverted))
}
