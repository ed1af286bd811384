package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pick_day_bot/internal/domain/calendar"

	"github.com/sirupsen/logrus"
)

type stubReconciler struct {
	summary []string
	err     error
	calls   int
	last    calendar.Date
}

func (s *stubReconciler) Reconcile(ctx context.Context, today calendar.Date) ([]string, error) {
	s.calls++
	s.last = today
	return s.summary, s.err
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "test")
}

func newTestServer(rec *stubReconciler) *httptest.Server {
	h := NewHandlers(rec, time.UTC, "s3cret", testLogger())
	return httptest.NewServer(h.Router())
}

func postCron(t *testing.T, url, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/cron/daily", nil)
	if err != nil {
		t.Fatal(err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestCronRejectsMissingOrWrongSecret(t *testing.T) {
	rec := &stubReconciler{}
	srv := newTestServer(rec)
	defer srv.Close()

	for _, auth := range []string{"", "Bearer wrong", "s3cret", "Basic s3cret"} {
		resp := postCron(t, srv.URL, auth)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("auth %q: status = %d, want 401", auth, resp.StatusCode)
		}
	}
	if rec.calls != 0 {
		t.Errorf("reconciler ran %d times despite rejected auth", rec.calls)
	}
}

func TestCronRunsReconciliation(t *testing.T) {
	rec := &stubReconciler{summary: []string{"[system] check date: 2026-03-26", "[1001] OPENED voting for 2026/04"}}
	srv := newTestServer(rec)
	defer srv.Close()

	resp := postCron(t, srv.URL, "Bearer s3cret")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if rec.calls != 1 {
		t.Fatalf("reconciler ran %d times, want 1", rec.calls)
	}
	if rec.last.Year == 0 {
		t.Error("reconciler received a zero date")
	}

	var body cronResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Success {
		t.Error("response success = false")
	}
	if len(body.Summary) != 2 || body.Summary[1] != "[1001] OPENED voting for 2026/04" {
		t.Errorf("summary = %v", body.Summary)
	}
}

func TestCronReportsFailureWithPartialSummary(t *testing.T) {
	rec := &stubReconciler{
		summary: []string{"[system] check date: 2026-03-26"},
		err:     errors.New("database gone"),
	}
	srv := newTestServer(rec)
	defer srv.Close()

	resp := postCron(t, srv.URL, "Bearer s3cret")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body cronResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Success {
		t.Error("response success = true on failure")
	}
	if len(body.Summary) != 1 {
		t.Errorf("partial summary = %v", body.Summary)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubReconciler{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
