package streak

import (
	"fmt"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// Milestone rewards for exact streak days, checked before any other tier
var milestones = map[int]domain.StreakReward{
	7:   {Day: 7, XP: 200, Title: "7-Day Streak: Week Warrior"},
	14:  {Day: 14, XP: 400, Title: "14-Day Streak: Fortnight Fighter"},
	30:  {Day: 30, XP: 1000, Title: "30-Day Streak: Monthly Master"},
	60:  {Day: 60, XP: 2000, Title: "60-Day Streak: Habit Hero"},
	90:  {Day: 90, XP: 3000, Title: "90-Day Streak: Quarter Champion"},
	365: {Day: 365, XP: 10000, Title: "365-Day Streak: Legend of the Year"},
}

const (
	baseDailyXP      = 50
	perDayXP         = 5
	roundMilestoneXP = 100
)

// CalculateStreakReward returns the reward for reaching a streak day.
// Tiers in priority order: exact milestone, every tenth day, progressive, day one.
// Days start at 1; anything lower is a validation failure.
func CalculateStreakReward(day int) (domain.StreakReward, error) {
	if day < 1 {
		return domain.StreakReward{}, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgInvalidStreakDay, day))
	}
	if m, ok := milestones[day]; ok {
		return m, nil
	}
	if day%10 == 0 {
		return domain.StreakReward{Day: day, XP: roundMilestoneXP, Title: fmt.Sprintf("Day %d Milestone", day)}, nil
	}
	if day > 1 {
		return domain.StreakReward{Day: day, XP: baseDailyXP + (day-1)*perDayXP, Title: fmt.Sprintf("Day %d Streak", day)}, nil
	}
	return domain.StreakReward{Day: 1, XP: baseDailyXP, Title: "Streak Started"}, nil
}
