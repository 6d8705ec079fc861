package progression

// XPPerLevel is the flat XP width of every level
const XPPerLevel = 100

// LevelForXP is the canonical level formula: floor(xp/100)+1, always derived from total XP
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPForLevel returns the total XP at which level starts
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * XPPerLevel
}

// Progress returns the current level and the XP still needed for the next one
func Progress(xp int) (level, xpToNext int) {
	level = LevelForXP(xp)
	if xp < 0 {
		xp = 0
	}
	return level, XPForLevel(level+1) - xp
}
