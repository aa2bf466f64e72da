//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

const testPassword = "s3cretpass"

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^I am registered as "([^"]*)"$`, iAmRegisteredAs)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, iLogInAs)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
	ctx.Step(`^I send a "(GET|POST|PATCH|DELETE)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "(GET|POST|PATCH|DELETE)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I have the following expenses:$`, iHaveTheFollowingExpenses)
	ctx.Step(`^I refresh my session$`, iRefreshMySession)
	ctx.Step(`^I log out$`, iLogOut)
	ctx.Step(`^I send a "(GET|PATCH|DELETE)" request to the last expense$`, iSendARequestToTheLastExpense)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should not be empty$`, theResponseHeaderShouldNotBeEmpty)
}

func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the weekly digest runs$`, theWeeklyDigestRuns)
	ctx.Step(`^the email worker runs$`, theEmailWorkerRuns)
	ctx.Step(`^(\d+) (day|days|hour|hours|minute|minutes) pass(?:es)?$`, timePasses)
	ctx.Step(`^the email API answers with status (\d+)$`, theEmailAPIAnswersWithStatus)
	ctx.Step(`^the email API should have received (\d+) emails?$`, theEmailAPIShouldHaveReceived)
	ctx.Step(`^the last email should be addressed to "([^"]*)"$`, theLastEmailShouldBeAddressedTo)
	ctx.Step(`^the last email subject should contain "([^"]*)"$`, theLastEmailSubjectShouldContain)
	ctx.Step(`^the last email should be tagged "([^"]*)" with "([^"]*)"$`, theLastEmailShouldBeTagged)
	ctx.Step(`^(\d+) queued emails? should be "([^"]*)"$`, queuedEmailsShouldBe)
}

// ---- API steps ----

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.clock.Set(t)
	return nil
}

func iAmRegisteredAs(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	name := strings.Split(email, "@")[0]
	body := fmt.Sprintf(`{"email":%q,"name":%q,"password":%q,"terms_accepted":true}`, email, name, testPassword)
	if err := tc.send(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration failed with %d: %s", tc.response.StatusCode, tc.responseBody)
	}
	return tc.storeTokens()
}

func iLogInAs(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	if err := tc.send(http.MethodPost, "/api/v1/auth/login", body); err != nil {
		return err
	}
	if tc.response.StatusCode == http.StatusOK {
		return tc.storeTokens()
	}
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	tc := GetTestContext(ctx)
	tc.accessToken = ""
	tc.refreshToken = ""
	return nil
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	return GetTestContext(ctx).send(method, path, "")
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	return GetTestContext(ctx).send(method, path, body.Content)
}

func iSendARequestToTheLastExpense(ctx context.Context, method string) error {
	tc := GetTestContext(ctx)
	if tc.lastExpenseID == "" {
		return fmt.Errorf("no expense has been created")
	}
	return tc.send(method, "/api/v1/expenses/"+tc.lastExpenseID, "")
}

func iHaveTheFollowingExpenses(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header row and at least one expense")
	}

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		payload := make(map[string]any, len(header))
		for i, cell := range row.Cells {
			switch key := header[i].Value; key {
			case "amount":
				payload["amount"] = json.RawMessage(cell.Value)
			case "category":
				payload["category_id"] = cell.Value
			default:
				payload[key] = cell.Value
			}
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		if err := tc.send(http.MethodPost, "/api/v1/expenses", string(body)); err != nil {
			return err
		}
		if tc.response.StatusCode != http.StatusCreated {
			return fmt.Errorf("creating expense failed with %d: %s", tc.response.StatusCode, tc.responseBody)
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(tc.responseBody, &created); err != nil {
			return fmt.Errorf("failed to decode expense: %w", err)
		}
		tc.lastExpenseID = created.ID
	}
	return nil
}

func iRefreshMySession(ctx context.Context) error {
	tc := GetTestContext(ctx)
	body := fmt.Sprintf(`{"refresh_token":%q}`, tc.refreshToken)
	if err := tc.send(http.MethodPost, "/api/v1/auth/refresh", body); err != nil {
		return err
	}
	if tc.response.StatusCode == http.StatusOK {
		return tc.storeTokens()
	}
	return nil
}

func iLogOut(ctx context.Context) error {
	tc := GetTestContext(ctx)
	body := fmt.Sprintf(`{"refresh_token":%q}`, tc.refreshToken)
	return tc.send(http.MethodPost, "/api/v1/auth/logout", body)
}

// ---- response steps ----

func theResponseStatusShouldBe(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return fmt.Errorf("no request has been sent")
	}
	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, path, expected string) error {
	value, err := GetTestContext(ctx).field(path)
	if err != nil {
		return err
	}
	if actual := stringify(value); actual != expected {
		return fmt.Errorf("expected %s to be %q, got %q", path, expected, actual)
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, path string, expected int) error {
	value, err := GetTestContext(ctx).field(path)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected %s to be a list, got %T", path, value)
	}
	if len(items) != expected {
		return fmt.Errorf("expected %s to have %d items, got %d", path, expected, len(items))
	}
	return nil
}

func theResponseHeaderShouldNotBeEmpty(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc.response.Header.Get(name) == "" {
		return fmt.Errorf("expected header %s to be set", name)
	}
	return nil
}

// ---- domain steps ----

func theWeeklyDigestRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.injector.Scheduler == nil {
		return fmt.Errorf("digest scheduler is not wired")
	}
	tc.injector.Scheduler.RunOnce(ctx)
	return theEmailWorkerRuns(ctx)
}

func theEmailWorkerRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.injector.Worker == nil {
		return fmt.Errorf("email worker is not wired")
	}
	tc.injector.Worker.ProcessNow(ctx)
	return nil
}

func timePasses(ctx context.Context, amount int, unit string) error {
	tc := GetTestContext(ctx)
	var d time.Duration
	switch strings.TrimSuffix(unit, "s") {
	case "day":
		d = time.Duration(amount) * 24 * time.Hour
	case "hour":
		d = time.Duration(amount) * time.Hour
	case "minute":
		d = time.Duration(amount) * time.Minute
	}
	tc.clock.Set(tc.clock.Now().Add(d))
	tc.redis.FastForward(d)
	return nil
}

func theEmailAPIAnswersWithStatus(ctx context.Context, status int) error {
	GetTestContext(ctx).emailAPI.SetStatus(status)
	return nil
}

func theEmailAPIShouldHaveReceived(ctx context.Context, expected int) error {
	received := GetTestContext(ctx).emailAPI.Received()
	if len(received) != expected {
		return fmt.Errorf("expected %d emails, got %d", expected, len(received))
	}
	return nil
}

func theLastEmailShouldBeAddressedTo(ctx context.Context, email string) error {
	last, err := lastEmail(ctx)
	if err != nil {
		return err
	}
	to, _ := last["to"].([]any)
	for _, recipient := range to {
		if s, ok := recipient.(string); ok && strings.Contains(s, email) {
			return nil
		}
	}
	return fmt.Errorf("expected the last email to go to %s, got %v", email, last["to"])
}

func theLastEmailSubjectShouldContain(ctx context.Context, fragment string) error {
	last, err := lastEmail(ctx)
	if err != nil {
		return err
	}
	subject, _ := last["subject"].(string)
	if !strings.Contains(subject, fragment) {
		return fmt.Errorf("expected subject to contain %q, got %q", fragment, subject)
	}
	return nil
}

func theLastEmailShouldBeTagged(ctx context.Context, name, value string) error {
	last, err := lastEmail(ctx)
	if err != nil {
		return err
	}
	tags, _ := last["tags"].([]any)
	for _, raw := range tags {
		tag, _ := raw.(map[string]any)
		if tag["name"] == name && tag["value"] == value {
			return nil
		}
	}
	return fmt.Errorf("expected tag %s=%s, got %v", name, value, last["tags"])
}

func queuedEmailsShouldBe(ctx context.Context, expected int, status string) error {
	tc := GetTestContext(ctx)
	var count int64
	if err := tc.db.DbConn.Model(&model.EmailQueueModel{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d %s emails, got %d", expected, status, count)
	}
	return nil
}

// ---- helpers ----

func (tc *TestContext) send(method, path, body string) error {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func (tc *TestContext) storeTokens() error {
	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &tokens); err != nil {
		return fmt.Errorf("failed to decode tokens: %w", err)
	}
	tc.accessToken = tokens.AccessToken
	tc.refreshToken = tokens.RefreshToken
	return nil
}

// field walks a dotted path such as "by_category.0.value" through the JSON body.
func (tc *TestContext) field(path string) (any, error) {
	var current any
	if err := json.Unmarshal(tc.responseBody, &current); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %s not found in %s", part, tc.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index %s out of range for %s", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %s of %s", part, path)
		}
	}
	return current, nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func lastEmail(ctx context.Context) (map[string]any, error) {
	received := GetTestContext(ctx).emailAPI.Received()
	if len(received) == 0 {
		return nil, fmt.Errorf("no email was received")
	}
	return received[len(received)-1], nil
}
