package common

import (
	"sort"
	"strings"
)

// Order in which methods are listed inside a folder
var methodRank = map[string]int{
	"GET":     0,
	"POST":    1,
	"PUT":     2,
	"PATCH":   3,
	"DELETE":  4,
	"OPTIONS": 5,
	"HEAD":    6,
}

// SortByPath orders requests by folder path, then URL, then method.
// The sort is stable, so equal requests keep document order.
//
// Logic:
//   - Folder paths compare segment by segment (case-insensitive)
//   - Root-level requests come first
//   - Unknown methods sort after the known ones
func SortByPath(rows []*FlattenedRequest) []*FlattenedRequest {
	sorted := append([]*FlattenedRequest(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if c := comparePath(a.Folders, b.Folders); c != 0 {
			return c < 0
		}
		if a.Item.Request.URL.Raw != b.Item.Request.URL.Raw {
			return a.Item.Request.URL.Raw < b.Item.Request.URL.Raw
		}
		return rank(a.Item.Request.Method) < rank(b.Item.Request.Method)
	})
	return sorted
}

func comparePath(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(strings.ToLower(a[i]), strings.ToLower(b[i])); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func rank(method string) int {
	if r, ok := methodRank[strings.ToUpper(method)]; ok {
		return r
	}
	return len(methodRank)
}
