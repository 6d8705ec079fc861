package skill

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName turns "power_3" into "Power 3"
func DisplayName(id string) string {
	// Casers are stateful, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
