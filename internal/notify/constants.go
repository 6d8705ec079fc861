package notify

// DefaultMilestoneEvery announces every fifth level
const DefaultMilestoneEvery = 5

// Embed colors
const (
	ColorLevelUp = 0xf1c40f
	ColorFounder = 0x9b59b6
)

// Announcement text
const (
	TitleLevelMilestone = "Level milestone"
	TitleFounderClaimed = "A new founder"
	DescLevelMilestone  = "**%s** reached level %d!"
	DescFounderClaimed  = "**%s** became a founder."
	FieldFounderSpots   = "Founder spots left"
	FooterAnnouncements = "HabitQuest"
)

// Log messages
const (
	LogMsgAnnouncementSent    = "Announcement sent"
	LogMsgAnnouncementFailed  = "Announcement failed"
	LogMsgAnnouncementDropped = "Announcement dropped, worker queue unavailable"
	LogMsgNameLookupFailed    = "Could not resolve display name, using user id"
)

// Error messages
const ErrMsgWebhookExecuteFmt = "discord webhook execute: %w"
