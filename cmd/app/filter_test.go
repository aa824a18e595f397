package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleItems() []item {
	return []item{
		{ID: 1, Type: "link", Title: "Go docs", Content: "https://go.dev/doc", Description: "language reference"},
		{ID: 2, Type: "command", Title: "Deploy", Content: "./run.sh", Category: "ops", Tags: "shell,deploy"},
		{ID: 3, Type: "note", Title: "Meeting", Content: "retro notes", Description: "weekly sync"},
	}
}

func TestFilterItemsByType(t *testing.T) {
	out := filterItems(sampleItems(), "link", "")
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	assert.Empty(t, filterItems(sampleItems(), "Link", ""), "type filter is exact")
}

func TestFilterItemsAllKeepsEverything(t *testing.T) {
	assert.Len(t, filterItems(sampleItems(), "all", ""), 3)
	assert.Len(t, filterItems(sampleItems(), "", ""), 3)
}

func TestFilterItemsQueryIsCaseInsensitive(t *testing.T) {
	for _, q := range []string{"deploy", "DEPLOY", "Deploy"} {
		out := filterItems(sampleItems(), "all", q)
		assert.Len(t, out, 1, "query %q", q)
		assert.Equal(t, int64(2), out[0].ID)
	}
}

func TestFilterItemsQuerySearchesAllFields(t *testing.T) {
	cases := map[string]int64{
		"go.dev":   1, // content
		"language": 1, // description
		"ops":      2, // category
		"shell":    2, // tags
		"meeting":  3, // title
	}
	for q, want := range cases {
		out := filterItems(sampleItems(), "all", q)
		assert.Len(t, out, 1, "query %q", q)
		assert.Equal(t, want, out[0].ID, "query %q", q)
	}
}

func TestFilterItemsCombined(t *testing.T) {
	out := filterItems(sampleItems(), "command", "shell")
	assert.Len(t, out, 1)

	assert.Empty(t, filterItems(sampleItems(), "link", "shell"), "type filter applies first")
}

func TestFilterItemsBlankQuery(t *testing.T) {
	assert.Len(t, filterItems(sampleItems(), "all", "   "), 3)
}
