package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveOTPCount(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	hourAgo := now.Add(-time.Hour)
	dayAgo := now.Add(-24 * time.Hour)
	dayAndMinuteAgo := now.Add(-24*time.Hour - time.Minute)

	tests := []struct {
		name  string
		last  *time.Time
		count int
		want  int
	}{
		{"never requested", nil, 0, 0},
		{"within window keeps count", &hourAgo, 7, 7},
		{"at cap within window", &hourAgo, 15, 15},
		{"exactly 24h old still counts", &dayAgo, 9, 9},
		{"older than 24h resets", &dayAndMinuteAgo, 15, 0},
		{"stale count ignored", &dayAndMinuteAgo, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveOTPCount(now, tt.last, tt.count))
		})
	}
}
