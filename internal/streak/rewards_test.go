package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitquest/habitquest-go/internal/domain"
)

func TestCalculateStreakReward(t *testing.T) {
	tests := []struct {
		day    int
		wantXP int
	}{
		{day: 1, wantXP: 50},
		{day: 2, wantXP: 55},
		{day: 6, wantXP: 75},
		{day: 7, wantXP: 200},
		{day: 10, wantXP: 100},
		{day: 14, wantXP: 400},
		{day: 20, wantXP: 100},
		{day: 29, wantXP: 190},
		{day: 30, wantXP: 1000},
		{day: 60, wantXP: 2000},
		{day: 90, wantXP: 3000},
		{day: 100, wantXP: 100},
		{day: 365, wantXP: 10000},
	}

	for _, tt := range tests {
		got, err := CalculateStreakReward(tt.day)
		require.NoError(t, err)
		assert.Equal(t, tt.wantXP, got.XP, "day %d", tt.day)
		assert.Equal(t, tt.day, got.Day)
		assert.NotEmpty(t, got.Title)
	}
}

func TestCalculateStreakReward_MilestoneBeatsRoundDay(t *testing.T) {
	// 30 and 90 are multiples of ten but must use their milestone reward
	monthly, err := CalculateStreakReward(30)
	require.NoError(t, err)
	assert.Equal(t, "30-Day Streak: Monthly Master", monthly.Title)

	quarter, err := CalculateStreakReward(90)
	require.NoError(t, err)
	assert.Equal(t, 3000, quarter.XP)
}

func TestCalculateStreakReward_RejectsDaysBeforeOne(t *testing.T) {
	for _, day := range []int{0, -1, -30} {
		_, err := CalculateStreakReward(day)
		assert.ErrorIs(t, err, domain.ErrValidation, "day %d", day)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "day %d", day)
	}
}
