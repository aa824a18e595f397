package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

func printJSON(v any) error {
	b, err := jsonMarshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

// truncate cuts on rune boundaries so multibyte text stays printable.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func printItems(items []item) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10),
			it.Type,
			it.Title,
			truncate(it.Content, 48),
			formatTime(it.UpdatedAt),
		})
	}
	printTable([]string{"ID", "TYPE", "TITLE", "CONTENT", "UPDATED_AT"}, rows)
}

func printItemDetail(it item) {
	printKV([][2]string{
		{"id", strconv.FormatInt(it.ID, 10)},
		{"type", it.Type},
		{"title", it.Title},
		{"content", it.Content},
		{"description", it.Description},
		{"category", it.Category},
		{"tags", it.Tags},
		{"created_at", formatTime(it.CreatedAt)},
		{"updated_at", formatTime(it.UpdatedAt)},
	})
}

func printTypes(types []itemType) {
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			strconv.FormatInt(t.ItemCount, 10),
			formatTime(t.CreatedAt),
		})
	}
	printTable([]string{"ID", "NAME", "ITEMS", "CREATED_AT"}, rows)
}
