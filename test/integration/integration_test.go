//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/expense-tracker/backend/test/integration/steps"
)

// TestFeatures runs the acceptance scenarios under features/, one at a time.
// Each scenario builds its own database, Redis and clock.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1,
		Strict:      true,
		TestingT:    t,
	}

	// GODOG_TAGS=@digest runs a subset, GODOG_FORMAT=progress is quieter in CI.
	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}
	if format := os.Getenv("GODOG_FORMAT"); format != "" {
		opts.Format = format
	}

	suite := godog.TestSuite{
		Name:                 "expense-tracker-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
