package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/repository"
	"github.com/habitquest/habitquest-go/internal/skill"
)

// Service defines the interface for profile and skill operations
type Service interface {
	CreateProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)

	// GetSkills returns the catalog entries the user has unlocked. Unknown ids are skipped.
	GetSkills(ctx context.Context, userID string) ([]domain.Skill, error)
	// GrantSkill unlocks a catalog skill; granting twice reports false
	GrantSkill(ctx context.Context, userID, skillID string) (bool, error)

	// InvalidateProfile drops the cached profile after another service wrote it
	InvalidateProfile(userID string)
}

// CacheConfig holds the profile cache settings
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type service struct {
	repo    repository.Profile
	catalog *skill.Catalog
	cache   *profileCache
}

// NewService creates a new profile service
func NewService(repo repository.Profile, catalog *skill.Catalog, cacheCfg CacheConfig) Service {
	if catalog == nil {
		catalog = skill.DefaultCatalog()
	}
	if cacheCfg.TTL <= 0 {
		cacheCfg.TTL = DefaultCacheTTL
	}
	return &service{
		repo:    repo,
		catalog: catalog,
		cache:   newProfileCache(cacheCfg.Size, cacheCfg.TTL),
	}
}

func (s *service) CreateProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgDisplayNameTooLong, MaxDisplayNameLength))
	}

	p := &domain.Profile{
		UserID:         userID,
		DisplayName:    displayName,
		Level:          1,
		UnlockedSkills: []string{},
	}
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgCreateProfileFailed)
	}

	logger.FromContext(ctx).Info(LogMsgProfileCreated, "user_id", userID)
	return p, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if p, ok := s.cache.Get(userID); ok {
		return p, nil
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgGetProfileFailed)
	}
	s.cache.Set(p)
	return p, nil
}

func (s *service) GetSkills(ctx context.Context, userID string) ([]domain.Skill, error) {
	ids, err := s.repo.GetUnlockedSkills(ctx, userID)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgGetSkillsFailed)
	}

	skills := make([]domain.Skill, 0, len(ids))
	for _, id := range ids.IDs() {
		if sk, ok := s.catalog.Skill(id); ok {
			skills = append(skills, sk)
		}
	}
	return skills, nil
}

func (s *service) GrantSkill(ctx context.Context, userID, skillID string) (bool, error) {
	log := logger.FromContext(ctx)

	if _, ok := s.catalog.Skill(skillID); !ok {
		return false, domain.NewValidationFailure(domain.ErrSkillNotFound, fmt.Sprintf(ErrMsgUnknownSkillFmt, skillID))
	}

	added, err := s.repo.UnlockSkill(ctx, userID, skillID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, err
		}
		return false, domain.NewStoreUnavailable(err, ErrMsgGrantSkillFailed)
	}
	s.cache.Invalidate(userID)

	if added {
		log.Info(LogMsgSkillGranted, "user_id", userID, "skill_id", skillID)
	} else {
		log.Debug(LogMsgSkillKnown, "user_id", userID, "skill_id", skillID)
	}
	return added, nil
}

func (s *service) InvalidateProfile(userID string) {
	s.cache.Invalidate(userID)
}

func validateUserID(userID string) error {
	if userID == "" {
		return domain.NewValidationFailure(domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}
	if len(userID) > MaxUserIDLength {
		return domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgUserIDTooLongFmt, MaxUserIDLength))
	}
	return nil
}
