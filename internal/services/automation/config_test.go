package automation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/magabrotheeeer/billing-notifier/internal/config"
)

func TestConfig_Apply(t *testing.T) {
	base := DefaultConfig()

	t.Run("empty patch changes nothing", func(t *testing.T) {
		got, err := base.Apply(ConfigPatch{})
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("partial patch keeps other fields", func(t *testing.T) {
		enabled := false
		interval := 30 * time.Second
		got, err := base.Apply(ConfigPatch{
			Enabled:       &enabled,
			CheckInterval: &interval,
		})
		require.NoError(t, err)
		assert.False(t, got.Enabled)
		assert.Equal(t, 30*time.Second, got.CheckInterval)
		assert.Equal(t, base.BusinessHours, got.BusinessHours)
		assert.Equal(t, base.ReminderDays, got.ReminderDays)
	})

	t.Run("invalid interval is rejected", func(t *testing.T) {
		interval := -time.Second
		_, err := base.Apply(ConfigPatch{CheckInterval: &interval})
		assert.Error(t, err)
	})

	t.Run("invalid business hours are rejected", func(t *testing.T) {
		hours := BusinessHours{StartHour: 20, EndHour: 8, WorkDays: base.BusinessHours.WorkDays}
		_, err := base.Apply(ConfigPatch{BusinessHours: &hours})
		assert.Error(t, err)
	})

	t.Run("negative reminder days are rejected", func(t *testing.T) {
		days := -1
		_, err := base.Apply(ConfigPatch{ReminderDays: &days})
		assert.Error(t, err)
	})

	t.Run("zero message cap is rejected", func(t *testing.T) {
		limit := 0
		_, err := base.Apply(ConfigPatch{MaxMessagesPerDay: &limit})
		assert.Error(t, err)
	})

	t.Run("escalation schedule is replaced", func(t *testing.T) {
		got, err := base.Apply(ConfigPatch{OverdueEscalation: []int{1, 5}})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 5}, got.OverdueEscalation)
	})
}

func TestConfigFromApp(t *testing.T) {
	got := ConfigFromApp(appconfig.Automation{
		Enabled:              true,
		CheckInterval:        45 * time.Second,
		BusinessHoursStart:   9,
		BusinessHoursEnd:     19,
		WorkDays:             []int{1, 2, 3, 4, 5, 6},
		ReminderDays:         2,
		OverdueEscalation:    []int{1, 7},
		MaxMessagesPerDay:    50,
		DelayBetweenMessages: time.Second,
	})

	assert.True(t, got.Enabled)
	assert.Equal(t, 45*time.Second, got.CheckInterval)
	assert.Equal(t, 9, got.BusinessHours.StartHour)
	assert.Equal(t, 19, got.BusinessHours.EndHour)
	assert.Equal(t, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
	}, got.BusinessHours.WorkDays)
	assert.Equal(t, 2, got.ReminderDays)
	assert.Equal(t, []int{1, 7}, got.OverdueEscalation)
	assert.Equal(t, 50, got.MaxMessagesPerDay)
	assert.Equal(t, time.Second, got.DelayBetweenMessages)
}
