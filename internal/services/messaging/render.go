package messaging

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Value is one placeholder substitution applied by Render
type Value func(pairs []string) []string

// Username substitutes {username}
func Username(username string) Value {
	return func(pairs []string) []string {
		return append(pairs, models.PlaceholderUsername, username)
	}
}

// Position substitutes {position}
func Position(position int) Value {
	return func(pairs []string) []string {
		return append(pairs, models.PlaceholderPosition, strconv.Itoa(position))
	}
}

// WaitTime substitutes {waitTime} with a number of minutes
func WaitTime(minutes int) Value {
	return func(pairs []string) []string {
		return append(pairs, models.PlaceholderWaitTime, strconv.Itoa(minutes))
	}
}

// Render replaces every occurrence of each supplied placeholder in template.
// Placeholders without a supplied value are left as written, and values are
// inserted literally, so a username containing "{position}" is not expanded.
func Render(template string, values ...Value) string {
	if len(values) == 0 {
		return template
	}

	var pairs []string
	for _, v := range values {
		pairs = v(pairs)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
