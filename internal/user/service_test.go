package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/testing/mocks"
)

func newTestService() (Service, *mocks.ProfileRepository) {
	repo := new(mocks.ProfileRepository)
	return NewService(repo, skill.DefaultCatalog(), CacheConfig{Size: 10, TTL: time.Minute}), repo
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at level one", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("CreateProfile", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.UserID == "user-1" && p.Level == 1 && p.DisplayName == "Ada"
		})).Return(nil)

		p, err := svc.CreateProfile(ctx, " user-1 ", "  Ada ")
		require.NoError(t, err)
		assert.Equal(t, 1, p.Level)
		assert.Zero(t, p.XP)
		assert.Empty(t, p.UnlockedSkills)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name, userID, displayName string
		}{
			{"empty id", "  ", "Ada"},
			{"long id", strings.Repeat("x", MaxUserIDLength+1), "Ada"},
			{"long name", "user-1", strings.Repeat("é", MaxDisplayNameLength+1)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, repo := newTestService()
				_, err := svc.CreateProfile(ctx, tt.userID, tt.displayName)
				assert.ErrorIs(t, err, domain.ErrValidation)
				repo.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("duplicate passes through", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("CreateProfile", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists)

		_, err := svc.CreateProfile(ctx, "user-1", "")
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("CreateProfile", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.CreateProfile(ctx, "user-1", "")
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestGetProfile_CachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	repo.On("GetProfile", ctx, "user-1").Return(&domain.Profile{UserID: "user-1", XP: 10, UnlockedSkills: []string{"power_1"}}, nil)

	first, err := svc.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	first.UnlockedSkills[0] = "mutated"

	second, err := svc.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"power_1"}, second.UnlockedSkills, "cache hands out copies")
	repo.AssertNumberOfCalls(t, "GetProfile", 1)

	svc.InvalidateProfile("user-1")
	_, err = svc.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetProfile", 2)
}

func TestGetProfile_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	repo.On("GetProfile", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetSkills_SkipsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	repo.On("GetUnlockedSkills", ctx, "user-1").Return(
		domain.NewSkillSet(domain.SkillPower1, "retired_skill", domain.SkillFortune1), nil)

	skills, err := svc.GetSkills(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, domain.SkillFortune1, skills[0].ID)
	assert.Equal(t, domain.SkillPower1, skills[1].ID)
}

func TestGrantSkill(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown skill", func(t *testing.T) {
		svc, repo := newTestService()
		_, err := svc.GrantSkill(ctx, "user-1", "power_99")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrSkillNotFound)
		repo.AssertNotCalled(t, "UnlockSkill", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("grant is idempotent", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("UnlockSkill", ctx, "user-1", domain.SkillPower4).Return(true, nil).Once()
		repo.On("UnlockSkill", ctx, "user-1", domain.SkillPower4).Return(false, nil).Once()

		added, err := svc.GrantSkill(ctx, "user-1", domain.SkillPower4)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = svc.GrantSkill(ctx, "user-1", domain.SkillPower4)
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("UnlockSkill", ctx, "ghost", domain.SkillPower1).Return(false, domain.ErrUserNotFound)

		_, err := svc.GrantSkill(ctx, "ghost", domain.SkillPower1)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestProfileCache_VersionMismatchDropsEntry(t *testing.T) {
	c := newProfileCache(4, time.Minute)
	c.Set(&domain.Profile{UserID: "user-1"})
	c.lru.Add("user-2", &cachedProfileEntry{Version: "0.9", Profile: domain.Profile{UserID: "user-2"}})

	_, ok := c.Get("user-1")
	assert.True(t, ok)
	_, ok = c.Get("user-2")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}
