package utils

import (
	"regexp"
	"strings"
	"sync"
)

var (
	globCache   = make(map[string]*regexp.Regexp)
	globCacheMu sync.Mutex
)

// MatchGlob reports whether value matches pattern, where "*" matches any run of
// characters including "/". The whole value must match.
//
// Examples:
//   - "api/users/*" matches "api/users/{id}/posts"
//   - "*login" matches "api/auth/login"
func MatchGlob(pattern, value string) bool {
	if pattern == value {
		return true
	}
	return compileGlob(pattern).MatchString(value)
}

// MatchAnyGlob reports whether value matches at least one pattern
func MatchAnyGlob(patterns []string, value string) bool {
	for _, p := range patterns {
		if MatchGlob(p, value) {
			return true
		}
	}
	return false
}

func compileGlob(pattern string) *regexp.Regexp {
	globCacheMu.Lock()
	defer globCacheMu.Unlock()

	if re, ok := globCache[pattern]; ok {
		return re
	}

	quoted := regexp.QuoteMeta(pattern)
	re := regexp.MustCompile(`^` + strings.ReplaceAll(quoted, `\*`, `.*`) + `\z`)
	globCache[pattern] = re
	return re
}

// Intersects reports whether a and b share at least one entry
func Intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		if set[s] {
			return true
		}
	}
	return false
}

// Contains reports whether list holds s
func Contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// BaseName returns the last segment of a qualified type name, accepting
// "\", "/" and "." as separators ("App\Http\Controllers\UserController" -> "UserController")
func BaseName(qualified string) string {
	qualified = strings.TrimSpace(qualified)
	if idx := strings.LastIndexAny(qualified, `\/.`); idx >= 0 {
		return qualified[idx+1:]
	}
	return qualified
}
