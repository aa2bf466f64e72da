// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// RecordKind names the type of a raw record.
type RecordKind string

const (
	RecordKindExpense  RecordKind = "expense"
	RecordKindCategory RecordKind = "category"
)

// RawExpense is an expense as it arrives from a file or an external feed.
type RawExpense struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Amount      string `json:"amount" yaml:"amount" toml:"amount"`
	Category    string `json:"category" yaml:"category" toml:"category"`
	ExpenseDate string `json:"expense_date" yaml:"expense_date" toml:"expense_date"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
}

// RawCategory is a category as it arrives from a file or an external feed.
type RawCategory struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	Name     string `json:"name" yaml:"name" toml:"name"`
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty" toml:"parent_id"`
}

// RecordIssue describes a record that was skipped.
type RecordIssue struct {
	Kind  RecordKind
	Index int
	ID    string
	Err   error
}

// String implements fmt.Stringer.
func (i RecordIssue) String() string {
	id := i.ID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("%s #%d (%s): %v", i.Kind, i.Index, id, i.Err)
}

// expenseDateLayouts are tried in order. Layouts without a zone are read in the caller's location.
var expenseDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

var (
	errMissingID       = errors.New("id is required")
	errMissingName     = errors.New("name is required")
	errDuplicateID     = errors.New("duplicate id")
	errNegativeAmount  = errors.New("amount must not be negative")
	errUnparsableDate  = errors.New("expense_date is not a recognised date")
	errUnparsableValue = errors.New("amount is not a decimal number")
)

// ParseExpenses converts raw records into expenses. Malformed records are
// skipped and reported so one bad row never blanks a summary.
func ParseExpenses(records []RawExpense, userID uuid.UUID, loc *time.Location) ([]*entity.Expense, []RecordIssue) {
	if loc == nil {
		loc = time.UTC
	}

	expenses := make([]*entity.Expense, 0, len(records))
	var issues []RecordIssue

	for i, raw := range records {
		expense, err := parseExpense(raw, userID, loc)
		if err != nil {
			issues = append(issues, RecordIssue{Kind: RecordKindExpense, Index: i, ID: raw.ID, Err: err})
			continue
		}
		expenses = append(expenses, expense)
	}

	return expenses, issues
}

func parseExpense(raw RawExpense, userID uuid.UUID, loc *time.Location) (*entity.Expense, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw.Amount))
	if err != nil {
		return nil, domainerror.NewMalformedRecordError(fmt.Sprintf("amount %q", raw.Amount), errUnparsableValue)
	}
	if amount.IsNegative() {
		return nil, domainerror.NewMalformedRecordError(fmt.Sprintf("amount %s", amount), errNegativeAmount)
	}

	date, err := parseExpenseDate(raw.ExpenseDate, loc)
	if err != nil {
		return nil, domainerror.NewMalformedRecordError(fmt.Sprintf("expense_date %q", raw.ExpenseDate), err)
	}

	expense := entity.NewExpense(userID, amount, strings.TrimSpace(raw.Category), raw.Description, date)
	if raw.ID != "" {
		expense.ID = recordUUID(raw.ID)
	}
	return expense, nil
}

func parseExpenseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range expenseDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparsableDate
}

// recordUUID keeps real UUIDs and maps any other opaque id onto a stable one.
func recordUUID(id string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
}

// ParseCategories converts raw records into categories. Records without an id
// or name, repeated ids and categories nested below a leaf are skipped.
func ParseCategories(records []RawCategory) ([]*entity.Category, []RecordIssue) {
	var issues []RecordIssue
	byID := make(map[string]RawCategory, len(records))
	cleaned := make([]RawCategory, len(records))
	accepted := make([]int, 0, len(records))

	for i, raw := range records {
		raw.ID = strings.TrimSpace(raw.ID)
		raw.ParentID = strings.TrimSpace(raw.ParentID)
		cleaned[i] = raw

		var err error
		switch _, dup := byID[raw.ID]; {
		case raw.ID == "":
			err = errMissingID
		case strings.TrimSpace(raw.Name) == "":
			err = errMissingName
		case dup:
			err = errDuplicateID
		}
		if err != nil {
			issues = append(issues, RecordIssue{
				Kind:  RecordKindCategory,
				Index: i,
				ID:    raw.ID,
				Err:   domainerror.NewMalformedRecordError("category", err),
			})
			continue
		}

		byID[raw.ID] = raw
		accepted = append(accepted, i)
	}

	categories := make([]*entity.Category, 0, len(accepted))
	for _, i := range accepted {
		raw := cleaned[i]

		if parent, ok := byID[raw.ParentID]; ok && parent.ParentID != "" {
			issues = append(issues, RecordIssue{
				Kind:  RecordKindCategory,
				Index: i,
				ID:    raw.ID,
				Err:   domainerror.NewMalformedRecordError(fmt.Sprintf("parent %q", raw.ParentID), domainerror.ErrCategoryTooDeep),
			})
			continue
		}

		category := &entity.Category{
			ID:    raw.ID,
			Name:  strings.TrimSpace(raw.Name),
			Icon:  entity.DefaultCategoryIcon,
			Color: entity.DefaultCategoryColor,
		}
		if raw.ParentID != "" {
			parentID := raw.ParentID
			category.ParentID = &parentID
		}
		categories = append(categories, category)
	}

	return categories, issues
}
