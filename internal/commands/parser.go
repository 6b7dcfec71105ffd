package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Prefix starts every chat command
const Prefix = "!"

var keywords = map[string]models.CommandType{
	"join":     models.CommandTypeJoin,
	"leave":    models.CommandTypeLeave,
	"pos":      models.CommandTypePosition,
	"position": models.CommandTypePosition,
}

// Parse recognizes a queue command in a chat line. The keyword is matched
// case-insensitively; anything after the first whitespace following "!join" is kept verbatim as the
// message. Lines that are not queue commands return false.
func Parse(username, text string) (*models.Command, bool) {
	text = strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(text, Prefix) {
		return nil, false
	}

	body := text[len(Prefix):]
	keyword, rest := body, ""
	if i := strings.IndexFunc(body, unicode.IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(body[i:])
		keyword, rest = body[:i], body[i+size:]
	}

	cmdType, ok := keywords[strings.ToLower(keyword)]
	if !ok {
		return nil, false
	}

	cmd := &models.Command{
		Type:     cmdType,
		Username: username,
	}
	if cmdType == models.CommandTypeJoin {
		cmd.Message = rest
	}

	return cmd, true
}
