// Package notify posts player milestones to a Discord channel webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/worker"
)

// WebhookExecutor is the subset of *discordgo.Session the announcer uses
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Enqueuer runs announcements off the publishing goroutine
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// ProfileReader resolves display names for level-up announcements
type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// Config holds the webhook credentials
type Config struct {
	WebhookID      string
	WebhookToken   string
	MilestoneEvery int
}

// Announcer turns bus events into Discord messages
type Announcer struct {
	exec     WebhookExecutor
	pool     Enqueuer
	profiles ProfileReader
	cfg      Config
}

// NewAnnouncer creates an announcer. profiles may be nil.
func NewAnnouncer(exec WebhookExecutor, pool Enqueuer, profiles ProfileReader, cfg Config) *Announcer {
	if cfg.MilestoneEvery <= 0 {
		cfg.MilestoneEvery = DefaultMilestoneEvery
	}
	return &Announcer{exec: exec, pool: pool, profiles: profiles, cfg: cfg}
}

// Register subscribes to level-up and founder events
func (a *Announcer) Register(bus event.Bus) {
	bus.Subscribe(event.LevelUp, a.HandleLevelUp)
	bus.Subscribe(event.FounderClaimed, a.HandleFounderClaimed)
}

// Milestone returns the highest multiple of every in (oldLevel, newLevel]
func Milestone(oldLevel, newLevel, every int) (int, bool) {
	if every <= 0 || newLevel <= oldLevel {
		return 0, false
	}
	m := newLevel - newLevel%every
	if m <= oldLevel || m <= 0 {
		return 0, false
	}
	return m, true
}

// HandleLevelUp announces levels that land on or jump past a milestone
func (a *Announcer) HandleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.LevelUpPayload](evt.Payload)
	if err != nil {
		return err
	}
	level, ok := Milestone(p.OldLevel, p.NewLevel, a.cfg.MilestoneEvery)
	if !ok {
		return nil
	}

	userID := p.UserID
	a.enqueue(ctx, func(ctx context.Context) *discordgo.MessageEmbed {
		return &discordgo.MessageEmbed{
			Title:       TitleLevelMilestone,
			Description: fmt.Sprintf(DescLevelMilestone, a.displayName(ctx, userID), level),
			Color:       ColorLevelUp,
			Timestamp:   time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
			Footer:      &discordgo.MessageEmbedFooter{Text: FooterAnnouncements},
		}
	})
	return nil
}

// HandleFounderClaimed announces a confirmed founder purchase
func (a *Announcer) HandleFounderClaimed(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.FounderClaimedPayload](evt.Payload)
	if err != nil {
		return err
	}

	name := p.DisplayName
	if name == "" {
		name = p.UserID
	}
	a.enqueue(ctx, func(context.Context) *discordgo.MessageEmbed {
		return &discordgo.MessageEmbed{
			Title:       TitleFounderClaimed,
			Description: fmt.Sprintf(DescFounderClaimed, name),
			Color:       ColorFounder,
			Timestamp:   time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
			Fields: []*discordgo.MessageEmbedField{
				{Name: FieldFounderSpots, Value: fmt.Sprint(p.Remaining), Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: FooterAnnouncements},
		}
	})
	return nil
}

func (a *Announcer) enqueue(ctx context.Context, build func(context.Context) *discordgo.MessageEmbed) {
	job := worker.JobFunc(func(jobCtx context.Context) error {
		return a.Send(jobCtx, build(jobCtx))
	})
	if !a.pool.Enqueue(job) {
		logger.FromContext(ctx).Warn(LogMsgAnnouncementDropped)
	}
}

// Send posts one embed to the configured webhook
func (a *Announcer) Send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	log := logger.FromContext(ctx)
	params := &discordgo.WebhookParams{
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if _, err := a.exec.WebhookExecute(a.cfg.WebhookID, a.cfg.WebhookToken, false, params, discordgo.WithContext(ctx)); err != nil {
		log.Error(LogMsgAnnouncementFailed, "title", embed.Title, "error", err)
		return fmt.Errorf(ErrMsgWebhookExecuteFmt, err)
	}
	log.Info(LogMsgAnnouncementSent, "title", embed.Title)
	return nil
}

func (a *Announcer) displayName(ctx context.Context, userID string) string {
	if a.profiles == nil {
		return userID
	}
	profile, err := a.profiles.GetProfile(ctx, userID)
	if err != nil || profile.DisplayName == "" {
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgNameLookupFailed, "user_id", userID, "error", err)
		}
		return userID
	}
	return profile.DisplayName
}
