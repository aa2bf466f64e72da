// Package cli implements the expensectl command line: offline summaries of
// expense datasets stored as JSON, YAML or TOML files.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/fileinput"
	"github.com/expense-tracker/backend/internal/integration/report"
)

// ErrInvalidRecords is returned by validate when the dataset has malformed records.
var ErrInvalidRecords = errors.New("dataset contains invalid records")

// App is the expensectl command tree.
type App struct {
	rootCmd *cobra.Command
	clock   func() time.Time

	input    string
	nowFlag  string
	timezone string
}

// NewApp builds the command tree. clock may be nil.
func NewApp(version string, clock func() time.Time) *App {
	if clock == nil {
		clock = time.Now
	}
	app := &App{clock: clock}

	rootCmd := &cobra.Command{
		Use:           "expensectl",
		Short:         "Summarize expense datasets from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "expensectl version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&app.input, "input", "i", "", "Dataset file (.json, .yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&app.nowFlag, "now", "", "Evaluate ranges as of this instant (RFC3339 or YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&app.timezone, "tz", "", "IANA timezone for day boundaries (default: dataset timezone, then SUMMARY_DEFAULT_TIMEZONE, then UTC)")

	rootCmd.AddCommand(app.summaryCommand(), app.categoriesCommand(), app.validateCommand())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI with os.Args.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// Command exposes the root command for embedding and tests.
func (a *App) Command() *cobra.Command {
	return a.rootCmd
}

func (a *App) summaryCommand() *cobra.Command {
	var rangeFlag, from, to, formatFlag, output, title string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate expenses over a date range",
		Example: "  expensectl summary -i expenses.yaml --range last-month\n" +
			"  expensectl summary -i expenses.json --range custom --from 2024-01-01 --to 2024-01-31 --format pdf -o jan.pdf",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.consoleFor(cmd)

			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if format == report.FormatPDF && output == "" {
				return errors.New("--output is required for pdf reports")
			}

			selected, err := dashboard.ParseDateRange(rangeFlag)
			if err != nil {
				return err
			}

			ds, loc, err := a.loadDataset()
			if err != nil {
				return err
			}
			now, err := a.now(loc)
			if err != nil {
				return err
			}

			input := dashboard.ResolveInput{Range: selected, Now: now}
			if selected == dashboard.DateRangeCustom {
				if input.CustomStart, err = optionalDate(from, loc); err != nil {
					return err
				}
				if input.CustomEnd, err = optionalDate(to, loc); err != nil {
					return err
				}
			}
			window, err := dashboard.Resolve(input)
			if err != nil {
				return err
			}

			categories, expenses, issues := parseDataset(ds, loc)
			for _, issue := range issues {
				c.warning("Skipping %s", issue)
			}
			c.info("Loaded %d expenses and %d categories from %s", len(expenses), len(categories), a.input)

			summary := dashboard.Summarize(expenses, categories, window)

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := report.Write(w, report.Report{
				Title:       title,
				Summary:     summary,
				Location:    loc,
				GeneratedAt: now,
			}, format); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if output != "" {
				c.success("Report written to %s", output)
			}
			if format == report.FormatTable && !summary.Unattributed.IsZero() {
				c.warning("%s spent in categories missing from the dataset", boldYellow(summary.Unattributed.StringFixed(2)))
			}
			return nil
		},
	}

	names := make([]string, 0, len(dashboard.SupportedRanges()))
	for _, r := range dashboard.SupportedRanges() {
		names = append(names, string(r))
	}
	formats := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		formats = append(formats, string(f))
	}

	cmd.Flags().StringVarP(&rangeFlag, "range", "r", string(dashboard.DateRangeLastWeek), "Date range: "+strings.Join(names, ", "))
	cmd.Flags().StringVar(&from, "from", "", "First day of a custom range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of a custom range (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(report.FormatTable), "Output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	return cmd
}

func (a *App) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the category taxonomy",
		Long:  "Print the categories of --input, or the built-in taxonomy when no input is given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := entity.DefaultCategories()
			if a.input != "" {
				ds, _, err := a.loadDataset()
				if err != nil {
					return err
				}
				var issues []dashboard.RecordIssue
				categories, issues = dashboard.ParseCategories(ds.Categories)
				for _, issue := range issues {
					a.consoleFor(cmd).warning("Skipping %s", issue)
				}
			}

			table, err := renderTaxonomy(categories)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), table)
			return err
		},
	}
}

func (a *App) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset for malformed records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.consoleFor(cmd)

			ds, loc, err := a.loadDataset()
			if err != nil {
				return err
			}

			categories, expenses, issues := parseDataset(ds, loc)
			for _, issue := range issues {
				c.failure("%s", issue)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s categories, %s expenses, %s invalid\n",
				boldGreen(len(categories)),
				boldGreen(len(expenses)),
				invalidCount(len(issues)),
			)
			if len(issues) > 0 {
				return fmt.Errorf("%w: %d", ErrInvalidRecords, len(issues))
			}
			c.success("Dataset is valid")
			return nil
		},
	}
}

func (a *App) consoleFor(cmd *cobra.Command) console {
	return console{err: cmd.ErrOrStderr()}
}

// loadDataset reads --input and picks the location: --tz, then the dataset's
// timezone, then SUMMARY_DEFAULT_TIMEZONE, then UTC.
func (a *App) loadDataset() (*fileinput.Dataset, *time.Location, error) {
	if a.input == "" {
		return nil, nil, errors.New("--input is required")
	}
	ds, err := fileinput.Load(a.input)
	if err != nil {
		return nil, nil, err
	}

	name := a.timezone
	if name == "" {
		name = ds.Timezone
	}
	if name == "" {
		name = os.Getenv("SUMMARY_DEFAULT_TIMEZONE")
	}
	if name == "" {
		return ds, time.UTC, nil
	}
	loc, err := dashboard.LoadLocation(name)
	if err != nil {
		return nil, nil, err
	}
	return ds, loc, nil
}

// now returns the evaluation instant in loc. A bare date means noon of that day.
func (a *App) now(loc *time.Location) (time.Time, error) {
	if a.nowFlag == "" {
		return a.clock().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, a.nowFlag); err == nil {
		return t.In(loc), nil
	}
	day, err := dashboard.ParseDate(a.nowFlag, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return day.Add(12 * time.Hour), nil
}

// parseDataset validates the raw records. A dataset without categories is
// summarized against the built-in taxonomy.
func parseDataset(ds *fileinput.Dataset, loc *time.Location) ([]*entity.Category, []*entity.Expense, []dashboard.RecordIssue) {
	categories, issues := dashboard.ParseCategories(ds.Categories)
	if len(ds.Categories) == 0 {
		categories = entity.DefaultCategories()
	}
	expenses, expenseIssues := dashboard.ParseExpenses(ds.Expenses, uuid.Nil, loc)
	return categories, expenses, append(issues, expenseIssues...)
}

func optionalDate(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := dashboard.ParseDate(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func invalidCount(n int) string {
	if n == 0 {
		return boldGreen(n)
	}
	return boldRed(n)
}

// renderTaxonomy lists main categories followed by their leaves.
func renderTaxonomy(categories []*entity.Category) (string, error) {
	children := make(map[string][]*entity.Category)
	var roots []*entity.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	data := pterm.TableData{{"Category", "ID", "Kind"}}
	for _, root := range roots {
		data = append(data, []string{pterm.Bold.Sprint(root.Name), root.ID, "main"})
		for _, leaf := range children[root.ID] {
			data = append(data, []string{"  " + leaf.Name, leaf.ID, "leaf"})
		}
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
}
