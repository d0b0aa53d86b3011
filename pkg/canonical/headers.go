package canonical

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var headerSanitizeRe = regexp.MustCompile(`[^0-9a-zA-Z_]+`)

// NormalizeHeader reduces a raw column header to its lookup form:
// transliterated to ASCII, lowercased, spaces and symbol runs collapsed
// to underscores. "Количество заказов" becomes "kolichestvo_zakazov".
func NormalizeHeader(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = headerSanitizeRe.ReplaceAllString(normalized, "_")
	return strings.Trim(normalized, "_")
}

// MapColumns maps raw headers to output column names using the alias
// table. It returns two maps keyed by the original header: known headers
// to their canonical name, unknown headers to a generated Other_ name.
//
// The first header hitting a canonical field keeps the bare name; later
// headers hitting the same field get _1, _2, ... suffixes in encounter
// order so distinct source columns never merge silently. Other_ names
// are uniqued the same way against each other.
func MapColumns(columns []string, aliases *AliasTable) (map[string]string, map[string]string) {
	canonicalMap := make(map[string]string)
	otherMap := make(map[string]string)
	used := make(map[string]int)
	takenOther := make(map[string]bool)

	for _, column := range columns {
		normalized := NormalizeHeader(column)
		canonical, ok := aliases.Lookup(column)
		if ok {
			name := canonical
			if n, seen := used[canonical]; seen {
				used[canonical] = n + 1
				name = fmt.Sprintf("%s_%d", canonical, n+1)
			} else {
				used[canonical] = 0
			}
			canonicalMap[column] = name
			continue
		}

		safe := normalized
		if safe == "" {
			safe = "column"
		}
		otherName := OtherPrefix + safe
		if takenOther[otherName] {
			suffix := 1
			for takenOther[fmt.Sprintf("%s_%d", otherName, suffix)] {
				suffix++
			}
			otherName = fmt.Sprintf("%s_%d", otherName, suffix)
		}
		takenOther[otherName] = true
		otherMap[column] = otherName
	}

	return canonicalMap, otherMap
}
