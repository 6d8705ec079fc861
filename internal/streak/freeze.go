package streak

import (
	"fmt"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// PurchaseFreeze checks and prices one streak freeze. Nothing changes on failure.
func PurchaseFreeze(xp, freezeCount int) (domain.FreezePurchase, error) {
	if freezeCount >= domain.MaxFreezeCount {
		return domain.FreezePurchase{XP: xp, FreezeCount: freezeCount},
			domain.NewInsufficientResource(domain.ErrFreezeCapReached, fmt.Sprintf(ErrMsgFreezeCap, freezeCount, domain.MaxFreezeCount))
	}
	if xp < domain.StreakFreezeCost {
		return domain.FreezePurchase{XP: xp, FreezeCount: freezeCount},
			domain.NewInsufficientResource(domain.ErrInsufficientXP, fmt.Sprintf(ErrMsgFreezeCost, domain.StreakFreezeCost, xp))
	}
	return domain.FreezePurchase{
		XP:          xp - domain.StreakFreezeCost,
		FreezeCount: freezeCount + 1,
		Cost:        domain.StreakFreezeCost,
	}, nil
}

// AffordableFreezes is floor(xp/cost) clamped to [0, MaxFreezeCount]
func AffordableFreezes(xp int) int {
	return min(max(xp/domain.StreakFreezeCost, 0), domain.MaxFreezeCount)
}
