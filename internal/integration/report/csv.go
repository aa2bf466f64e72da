package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"
)

// WriteCSV writes one row per figure: section, key, label, value.
// Sections are total, unattributed, series, category, main_category and top.
func WriteCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)
	s := r.Summary

	rows := [][]string{
		{"section", "key", "label", "value"},
		{"total", string(s.Range), r.period(), s.Total.StringFixed(2)},
		{"unattributed", "", "", s.Unattributed.StringFixed(2)},
	}
	for _, p := range s.TimeSeries {
		rows = append(rows, []string{"series", p.Start.Format(time.DateOnly), p.Label, p.Value.StringFixed(2)})
	}
	for _, id := range sortedKeys(s.ByCategory) {
		rows = append(rows, []string{"category", id, labelOf(s.Labels, id), s.ByCategory[id].StringFixed(2)})
	}
	for _, id := range sortedKeys(s.ByMainCategory) {
		rows = append(rows, []string{"main_category", id, labelOf(s.Labels, id), s.ByMainCategory[id].StringFixed(2)})
	}
	for i, c := range s.TopCategories {
		rows = append(rows, []string{"top", fmt.Sprintf("%d", i+1), c.Label, c.Value.StringFixed(2)})
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing CSV report: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func labelOf(labels map[string]string, id string) string {
	if label, ok := labels[id]; ok {
		return label
	}
	return id
}
