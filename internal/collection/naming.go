package collection

import (
	"strings"
	"unicode"
)

// DefaultRequestName is used when a route has no action name
const DefaultRequestName = "Request"

// RequestName converts an action name into a display name: the name is split
// on "_", "-" and before upper-case letters, and each fragment is capitalized
// ("get_user-byId" -> "GetUserById").
func RequestName(action string) string {
	if action == "" {
		return DefaultRequestName
	}

	var b strings.Builder
	var fragment []rune
	flush := func() {
		if len(fragment) == 0 {
			return
		}
		fragment[0] = unicode.ToUpper(fragment[0])
		b.WriteString(string(fragment))
		fragment = fragment[:0]
	}

	for _, r := range action {
		switch {
		case r == '_' || r == '-':
			flush()
			continue
		case unicode.IsUpper(r):
			flush()
		}
		fragment = append(fragment, r)
	}
	flush()

	if b.Len() == 0 {
		return DefaultRequestName
	}
	return b.String()
}
