package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Search returns documents whose named fields (or all fields when none
// are given) contain query as a case-insensitive substring. Values are
// NFC-normalized before folding so composed and decomposed input match.
// Nested objects and arrays are matched against their JSON text.
// An empty or whitespace query returns the full collection unchanged.
func (db *DB) Search(collection, query string, fields ...string) []Document {
	db.mu.Lock()
	defer db.mu.Unlock()

	docs := db.getAllLocked(collection, nil)
	term := searchFold(strings.TrimSpace(query))
	if term == "" {
		return docs
	}

	matched := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if docMatches(doc, term, fields) {
			matched = append(matched, doc)
		}
	}
	return matched
}

func docMatches(doc Document, term string, fields []string) bool {
	names := fields
	if len(names) == 0 {
		names = make([]string, 0, len(doc))
		for k := range doc {
			names = append(names, k)
		}
	}

	for _, field := range names {
		value, present := doc[field]
		if !present || value == nil {
			continue
		}
		switch value.(type) {
		case map[string]any, []any, Document:
			// Flattened comparison for nested values.
			text, err := json.Marshal(value)
			if err == nil && strings.Contains(searchFold(string(text)), term) {
				return true
			}
		default:
			if strings.Contains(searchFold(fmt.Sprint(value)), term) {
				return true
			}
		}
	}
	return false
}

func searchFold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
