package fileinput

import (
	"os"
	"path/filepath"
	"testing"
)

const jsonDataset = `{
  "timezone": "America/Sao_Paulo",
  "categories": [
    {"id": "food", "name": "Food"},
    {"id": "groceries", "name": "Groceries", "parent_id": "food"}
  ],
  "expenses": [
    {"id": "e1", "amount": "12.50", "category": "groceries", "expense_date": "2024-03-14"}
  ]
}`

const yamlDataset = `timezone: America/Sao_Paulo
categories:
  - id: food
    name: Food
  - id: groceries
    name: Groceries
    parent_id: food
expenses:
  - id: e1
    amount: "12.50"
    category: groceries
    expense_date: "2024-03-14"
`

const tomlDataset = `timezone = "America/Sao_Paulo"

[[categories]]
id = "food"
name = "Food"

[[categories]]
id = "groceries"
name = "Groceries"
parent_id = "food"

[[expenses]]
id = "e1"
amount = "12.50"
category = "groceries"
expense_date = "2024-03-14"
`

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"json", FormatJSON, jsonDataset},
		{"yaml", FormatYAML, yamlDataset},
		{"toml", FormatTOML, tomlDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if ds.Timezone != "America/Sao_Paulo" {
				t.Errorf("expected timezone America/Sao_Paulo, got %q", ds.Timezone)
			}
			if len(ds.Categories) != 2 {
				t.Fatalf("expected 2 categories, got %d", len(ds.Categories))
			}
			if ds.Categories[1].ParentID != "food" {
				t.Errorf("expected parent food, got %q", ds.Categories[1].ParentID)
			}
			if len(ds.Expenses) != 1 {
				t.Fatalf("expected 1 expense, got %d", len(ds.Expenses))
			}
			e := ds.Expenses[0]
			if e.Amount != "12.50" || e.Category != "groceries" || e.ExpenseDate != "2024-03-14" {
				t.Errorf("unexpected expense %+v", e)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("{not json"), FormatJSON); err == nil {
		t.Error("expected JSON parse error")
	}
	if _, err := Decode([]byte("a = ["), FormatTOML); err == nil {
		t.Error("expected TOML parse error")
	}
	if _, err := Decode([]byte("{}"), Format("xml")); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"data.json":    FormatJSON,
		"data.YAML":    FormatYAML,
		"dir/data.yml": FormatYAML,
		"data.toml":    FormatTOML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil {
			t.Errorf("expected no error for %s, got %v", path, err)
			continue
		}
		if got != want {
			t.Errorf("expected %s for %s, got %s", want, path, got)
		}
	}

	if _, err := FormatFromPath("data.csv"); err == nil {
		t.Error("expected error for csv")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "expenses.yaml")
	if err := os.WriteFile(path, []byte(yamlDataset), 0o600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ds.Expenses) != 1 {
		t.Errorf("expected 1 expense, got %d", len(ds.Expenses))
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(dir + ".json"); err == nil {
		t.Error("expected error for missing path")
	}
}
