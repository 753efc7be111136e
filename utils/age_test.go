package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		birthday time.Time
		want     int
	}{
		{"mid fifties", time.Date(1971, 3, 10, 0, 0, 0, 0, time.UTC), 55},
		{"just under a year", now.AddDate(0, -11, 0), 0},
		{"exactly thirty-ish", time.Date(1996, 8, 1, 0, 0, 0, 0, time.UTC), 30},
		{"zero birthday", time.Time{}, 0},
		{"future birthday", now.AddDate(1, 0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AgeAt(tt.birthday, now))
		})
	}
}
