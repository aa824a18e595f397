package main

import (
	"strings"
	"time"
)

type item struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        string    `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type itemType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// filterItems narrows the full item list by an exact type match and a
// case-insensitive substring query, in that order. A filter of "all" or
// "" keeps every type.
func filterItems(items []item, filterType, query string) []item {
	result := items
	if filterType != "" && filterType != "all" {
		filtered := make([]item, 0, len(result))
		for _, it := range result {
			if it.Type == filterType {
				filtered = append(filtered, it)
			}
		}
		result = filtered
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return result
	}

	filtered := make([]item, 0, len(result))
	for _, it := range result {
		if strings.Contains(strings.ToLower(it.Title), q) ||
			strings.Contains(strings.ToLower(it.Content), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(it.Category), q) ||
			strings.Contains(strings.ToLower(it.Tags), q) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}
