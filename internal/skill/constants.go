package skill

// Basis points per 1.0 of multiplier
const basisPoints = 10000

// Skill branches
const (
	BranchPower      = "power"
	BranchEfficiency = "efficiency"
	BranchFortune    = "fortune"
)

// Error messages
const (
	ErrMsgReadCatalog      = "failed to read skill catalog %s: %w"
	ErrMsgParseCatalog     = "failed to parse skill catalog: %w"
	ErrMsgValidateCatalog  = "skill catalog failed validation: %w"
	ErrMsgDuplicateSkill   = "duplicate skill id %q"
	ErrMsgUnknownEffect    = "skill %q: unknown effect type %q"
	ErrMsgUnknownWeekday   = "skill %q: unknown weekday %q"
	ErrMsgUnknownPolicy    = "unknown doubler policy %q"
	ErrMsgInvalidCondition = "skill %q: invalid difficulty %q"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Skill catalog loaded"
)

// Catalog schema name registered with the schema validator
const catalogSchema = "skill_catalog.schema.json"
