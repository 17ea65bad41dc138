package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rebal/pkg/config"
)

func reminderConfig() config.ReminderConfig {
	return config.ReminderConfig{
		Hour:     9,
		Timezone: "Asia/Seoul",
		Title:    "VR 5.0 리밸런싱 점검",
	}
}

func TestBiweeklyReminder(t *testing.T) {
	// 2026-08-25 18:00 KST
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	data, err := BiweeklyReminder(now, reminderConfig())
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "BEGIN:VCALENDAR"))
	assert.Contains(t, text, "BEGIN:VEVENT")
	assert.Contains(t, text, "SUMMARY:VR 5.0 리밸런싱 점검")
	assert.Contains(t, text, "UID:")

	// 2주 뒤 9시 KST = 2026-09-08 00:00 UTC
	assert.Contains(t, text, "DTSTART:20260908T000000Z")
	assert.Contains(t, text, "DTEND:20260908T010000Z")
}

func TestBiweeklyReminder_BadTimezone(t *testing.T) {
	cfg := reminderConfig()
	cfg.Timezone = "Mars/Olympus"

	_, err := BiweeklyReminder(time.Now(), cfg)
	require.Error(t, err)
}

func TestReviewDates(t *testing.T) {
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	dates := ReviewDates(base, 3)
	require.Len(t, dates, 3)
	assert.Equal(t, base.AddDate(0, 0, 14), dates[0])
	assert.Equal(t, base.AddDate(0, 0, 28), dates[1])
	assert.Equal(t, base.AddDate(0, 0, 42), dates[2])
}

func TestReviewDates_ZeroSteps(t *testing.T) {
	assert.Empty(t, ReviewDates(time.Now(), 0))
}
