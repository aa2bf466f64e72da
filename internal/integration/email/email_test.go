package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/digest"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	adapter.EmailQueueRepository
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemoryQueue(jobs ...*entity.EmailJob) *memoryQueue {
	q := &memoryQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
	for _, j := range jobs {
		q.jobs[j.ID] = j
	}
	return q
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []*entity.EmailJob
	for _, j := range q.jobs {
		if j.IsReadyToProcess(now) {
			copied := *j
			due = append(due, &copied)
		}
	}
	sort.Slice(due, func(a, b int) bool { return due[a].ScheduledAt.Before(due[b].ScheduledAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memoryQueue) get(id uuid.UUID) *entity.EmailJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs[id]
}

var workerNow = time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)

func digestJob(t *testing.T) *entity.EmailJob {
	t.Helper()
	job := entity.NewEmailJob(uuid.New(), entity.TemplateWeeklySummary, "ana@example.com", "Ana", "Your week", map[string]interface{}{
		"Name":         "Ana",
		"PeriodStart":  "Mar 11",
		"PeriodEnd":    "Mar 17",
		"Total":        "42.50",
		"ExpenseCount": 3,
		"Days": []interface{}{
			map[string]interface{}{"Label": "Mon", "Value": "12.50"},
			map[string]interface{}{"Label": "Tue", "Value": "30.00"},
		},
		"TopCategories": []interface{}{
			map[string]interface{}{"Label": "Groceries", "Value": "30.00"},
		},
		"DashboardURL": "http://localhost:5173/dashboard",
	})
	job.ScheduledAt = workerNow.Add(-time.Minute)
	return job
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, WorkerConfig{BatchSize: 10}, func() time.Time { return workerNow })
}

func TestWorker(t *testing.T) {
	ctx := context.Background()

	t.Run("sends due job and marks it sent", func(t *testing.T) {
		job := digestJob(t)
		queue := newMemoryQueue(job)
		sender := NewMockEmailSender()

		if processed := newTestWorker(t, queue, sender).ProcessNow(ctx); processed != 1 {
			t.Fatalf("expected 1 processed job, got %d", processed)
		}

		sent := sender.SentEmails()
		if len(sent) != 1 {
			t.Fatalf("expected 1 email sent, got %d", len(sent))
		}
		if !strings.Contains(sent[0].HTML, "42.50") || !strings.Contains(sent[0].HTML, "Groceries") {
			t.Errorf("expected rendered HTML to contain total and category")
		}
		if !strings.Contains(sent[0].Text, "Tue: 30.00") {
			t.Errorf("expected text body to list days, got %q", sent[0].Text)
		}

		stored := queue.get(job.ID)
		if stored.Status != entity.EmailStatusSent {
			t.Errorf("expected status sent, got %s", stored.Status)
		}
		if stored.ResendID != "mock-1" {
			t.Errorf("expected provider id mock-1, got %s", stored.ResendID)
		}
	})

	t.Run("temporary failure is rescheduled", func(t *testing.T) {
		job := digestJob(t)
		queue := newMemoryQueue(job)
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("503 service unavailable"), false)

		newTestWorker(t, queue, sender).ProcessNow(ctx)

		stored := queue.get(job.ID)
		if stored.Status != entity.EmailStatusPending {
			t.Errorf("expected status pending, got %s", stored.Status)
		}
		if stored.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", stored.Attempts)
		}
		if !stored.ScheduledAt.Equal(workerNow.Add(time.Minute)) {
			t.Errorf("expected retry in 1m, got %s", stored.ScheduledAt)
		}
	})

	t.Run("permanent failure stops retries", func(t *testing.T) {
		job := digestJob(t)
		queue := newMemoryQueue(job)
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("422 validation error"), true)

		newTestWorker(t, queue, sender).ProcessNow(ctx)

		if stored := queue.get(job.ID); stored.Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed, got %s", stored.Status)
		}
	})

	t.Run("unknown template fails permanently", func(t *testing.T) {
		job := digestJob(t)
		job.TemplateType = "does_not_exist"
		queue := newMemoryQueue(job)
		sender := NewMockEmailSender()

		newTestWorker(t, queue, sender).ProcessNow(ctx)

		if stored := queue.get(job.ID); stored.Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed, got %s", stored.Status)
		}
		if len(sender.SentEmails()) != 0 {
			t.Error("expected nothing to be sent")
		}
	})

	t.Run("future jobs are left alone", func(t *testing.T) {
		job := digestJob(t)
		job.ScheduledAt = workerNow.Add(time.Hour)
		queue := newMemoryQueue(job)

		if processed := newTestWorker(t, queue, NewMockEmailSender()).ProcessNow(ctx); processed != 0 {
			t.Errorf("expected nothing processed, got %d", processed)
		}
	})
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("401 unauthorized"), true},
		{errors.New("422: invalid `to` field"), true},
		{errors.New("429 too many requests"), false},
		{errors.New("500 internal server error"), false},
		{errors.New("dial tcp: connection refused"), false},
	}
	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.want {
			t.Errorf("isPermanentError(%v): expected %v, got %v", tt.err, tt.want, got)
		}
	}
}

type countingRunner struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *countingRunner) Execute(context.Context) (*digest.QueueWeeklyDigestOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &digest.QueueWeeklyDigestOutput{Queued: 1}, nil
}

func TestScheduler(t *testing.T) {
	t.Run("runs immediately and stops with the context", func(t *testing.T) {
		runner := &countingRunner{}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			NewScheduler(runner, time.Hour).Start(ctx)
			close(done)
		}()

		deadline := time.After(2 * time.Second)
		for {
			runner.mu.Lock()
			calls := runner.calls
			runner.mu.Unlock()
			if calls > 0 {
				break
			}
			select {
			case <-deadline:
				t.Fatal("expected scheduler to run once on start")
			case <-time.After(10 * time.Millisecond):
			}
		}

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("expected scheduler to stop after cancel")
		}
	})

	t.Run("runner errors are swallowed", func(t *testing.T) {
		runner := &countingRunner{err: errors.New("db down")}
		NewScheduler(runner, time.Minute).RunOnce(context.Background())
		if runner.calls != 1 {
			t.Errorf("expected 1 call, got %d", runner.calls)
		}
	})
}

// redirect sends every request to target, keeping path and body.
type redirect struct {
	target *url.URL
}

func (r redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestResendClient(t *testing.T) {
	var received map[string]interface{}
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("expected /emails, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer re_test" {
			t.Errorf("expected bearer api key, got %q", got)
		}
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"email-123"}`))
			return
		}
		_, _ = w.Write([]byte(`{"statusCode":503,"name":"internal_server_error","message":"try later"}`))
	}))
	defer server.Close()

	target, _ := url.Parse(server.URL)
	client := NewResendClientWithHTTPClient(&http.Client{Transport: redirect{target: target}}, "re_test", "Expense Tracker", "digest@example.com")

	t.Run("sends and returns the provider id", func(t *testing.T) {
		result, err := client.Send(context.Background(), adapter.SendEmailInput{
			To:      "ana@example.com",
			Name:    "Ana",
			Subject: "Your week",
			HTML:    "<p>hi</p>",
			Text:    "hi",
			Tags:    map[string]string{"template": "weekly_summary"},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.ProviderID != "email-123" {
			t.Errorf("expected email-123, got %s", result.ProviderID)
		}
		if received["from"] != "Expense Tracker <digest@example.com>" {
			t.Errorf("expected formatted sender, got %v", received["from"])
		}
		to, _ := received["to"].([]interface{})
		if len(to) != 1 || to[0] != "Ana <ana@example.com>" {
			t.Errorf("expected named recipient, got %v", received["to"])
		}
		tags, _ := received["tags"].([]interface{})
		if len(tags) != 1 {
			t.Fatalf("expected 1 tag, got %v", received["tags"])
		}
		if tag, _ := tags[0].(map[string]interface{}); tag["name"] != "template" || tag["value"] != "weekly_summary" {
			t.Errorf("expected template tag, got %v", tags[0])
		}
	})

	t.Run("server errors are reported as email errors", func(t *testing.T) {
		status = http.StatusServiceUnavailable
		_, err := client.Send(context.Background(), adapter.SendEmailInput{To: "ana@example.com", Subject: "x", Text: "x"})
		var emailErr *domainerror.EmailError
		if !errors.As(err, &emailErr) {
			t.Fatalf("expected EmailError, got %v", err)
		}
	})
}
