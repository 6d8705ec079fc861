package streak

import (
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// Evaluate decides what a daily claim at now does to a streak.
//
// A claim on a day that already has a reward changes nothing. Otherwise the
// streak continues when it was last updated today or yesterday. A broken streak
// consumes one banked freeze and keeps its count, or resets to 1 without one.
// A user who never claimed is reported as no_streak; their claim starts at 1.
func Evaluate(now time.Time, st domain.StreakState, cal Calendar) domain.StreakEvaluation {
	if st.LastDailyReward != nil && cal.SameDay(*st.LastDailyReward, now) {
		status := domain.StreakStatusActive
		if st.CurrentStreak == 0 {
			status = domain.StreakStatusNone
		}
		return domain.StreakEvaluation{
			CanClaimToday:    false,
			Status:           status,
			StreakCount:      st.CurrentStreak,
			LongestStreak:    max(st.LongestStreak, st.CurrentStreak),
			FreezesRemaining: st.FreezeCount,
		}
	}

	eval := domain.StreakEvaluation{
		CanClaimToday:    true,
		FreezesRemaining: st.FreezeCount,
	}

	switch {
	case IsBroken(now, st, cal) && st.FreezeCount > 0:
		eval.Status = domain.StreakStatusFrozen
		eval.StreakCount = st.CurrentStreak
		eval.FreezeUsed = true
		eval.FreezesRemaining = st.FreezeCount - 1
	case IsBroken(now, st, cal):
		eval.Status = domain.StreakStatusBroken
		eval.StreakCount = 1
	case neverClaimed(st):
		eval.Status = domain.StreakStatusNone
		eval.StreakCount = 1
	default:
		eval.Status = domain.StreakStatusActive
		eval.StreakCount = st.CurrentStreak + 1
	}

	eval.LongestStreak = max(eval.StreakCount, st.LongestStreak)
	return eval
}

// IsBroken reports whether the streak was last updated before yesterday
func IsBroken(now time.Time, st domain.StreakState, cal Calendar) bool {
	if st.StreakUpdatedAt == nil {
		return false
	}
	updated := *st.StreakUpdatedAt
	return !cal.SameDay(updated, now) && !cal.IsYesterday(updated, now)
}

func neverClaimed(st domain.StreakState) bool {
	return st.CurrentStreak == 0 && st.StreakUpdatedAt == nil && st.LastDailyReward == nil
}

// Apply turns an evaluation into the state persisted after a successful claim
func Apply(now time.Time, eval domain.StreakEvaluation) domain.StreakState {
	claimed := now
	return domain.StreakState{
		CurrentStreak:   eval.StreakCount,
		LongestStreak:   eval.LongestStreak,
		FreezeCount:     eval.FreezesRemaining,
		LastDailyReward: &claimed,
		StreakUpdatedAt: &claimed,
	}
}

// SafeDefault is reported when the streak store cannot be read
func SafeDefault() domain.StreakEvaluation {
	return domain.StreakEvaluation{
		CanClaimToday: true,
		Status:        domain.StreakStatusSafe,
		StreakCount:   0,
	}
}
