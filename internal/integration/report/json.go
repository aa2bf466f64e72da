package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

type jsonReport struct {
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generated_at"`
	Summary     dto.SummaryResponse `json:"summary"`
}

// WriteJSON writes the summary in the same shape the HTTP API returns.
func WriteJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	out := jsonReport{
		Title:       r.title(),
		GeneratedAt: r.GeneratedAt.UTC(),
		Summary:     dto.ToSummaryResponse(&dashboard.GetSummaryOutput{Summary: r.Summary, Location: r.Location}),
	}
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("error encoding JSON report: %w", err)
	}
	return nil
}
