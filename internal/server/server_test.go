package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/brk3/streaks/internal/clock"
	"github.com/brk3/streaks/internal/storage/memory"
	"github.com/brk3/streaks/internal/tracker"
	"github.com/brk3/streaks/pkg/habit"
	"github.com/brk3/streaks/pkg/versioninfo"
)

const today = "2024-01-10"

func newTestServer(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	kv := memory.New()
	st := tracker.New(kv, clock.Fixed(today))
	if err := st.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(tracker.NewLocal(st)).Router(), kv
}

func mockRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decodeSnapshot(t *testing.T, rr *httptest.ResponseRecorder) habit.Snapshot {
	t.Helper()
	var snap habit.Snapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal error: %v (body %q)", err, rr.Body.String())
	}
	return snap
}

func TestListHabits_Seeded(t *testing.T) {
	h, _ := newTestServer(t)
	rr := mockRequest(h, http.MethodGet, "/habits/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	snap := decodeSnapshot(t, rr)
	if len(snap.Habits) != 2 {
		t.Fatalf("len=%d want 2", len(snap.Habits))
	}
	if snap.Today != today {
		t.Fatalf("today=%q want %q", snap.Today, today)
	}
}

func TestCreateToggleDelete(t *testing.T) {
	h, _ := newTestServer(t)

	rr := mockRequest(h, http.MethodPost, "/habits/", CreateHabitRequest{Name: " guitar "})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: got %d want 201", rr.Code)
	}
	snap := decodeSnapshot(t, rr)
	if len(snap.Habits) != 3 || snap.Habits[2].Name != "guitar" {
		t.Fatalf("unexpected habits after create: %+v", snap.Habits)
	}
	id := snap.Habits[2].ID

	rr = mockRequest(h, http.MethodPost, "/habits/"+itoa(id)+"/toggle", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("toggle: got %d want 200", rr.Code)
	}
	snap = decodeSnapshot(t, rr)
	got, ok := snap.Find(id)
	if !ok || !got.DoneToday || got.Streak != 1 {
		t.Fatalf("after toggle: %+v", got)
	}
	if snap.CompletionRate != 33 {
		t.Fatalf("completion rate = %d want 33", snap.CompletionRate)
	}

	rr = mockRequest(h, http.MethodDelete, "/habits/"+itoa(id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: got %d want 200", rr.Code)
	}
	snap = decodeSnapshot(t, rr)
	if _, ok := snap.Find(id); ok {
		t.Fatal("habit still present after delete")
	}
}

func TestCreate_EmptyNameIgnored(t *testing.T) {
	h, _ := newTestServer(t)

	rr := mockRequest(h, http.MethodPost, "/habits/", CreateHabitRequest{Name: "   "})
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if n := len(decodeSnapshot(t, rr).Habits); n != 2 {
		t.Fatalf("len=%d want 2", n)
	}
}

func TestCreate_LengthCheckedAfterTrim(t *testing.T) {
	h, _ := newTestServer(t)

	rr := mockRequest(h, http.MethodPost, "/habits/", CreateHabitRequest{Name: strings.Repeat(" ", maxNameLength+1)})
	if rr.Code != http.StatusOK {
		t.Fatalf("blank name: got %d want 200", rr.Code)
	}
	if n := len(decodeSnapshot(t, rr).Habits); n != 2 {
		t.Fatalf("len=%d want 2", n)
	}

	padded := "  " + strings.Repeat("x", maxNameLength) + "  "
	rr = mockRequest(h, http.MethodPost, "/habits/", CreateHabitRequest{Name: padded})
	if rr.Code != http.StatusCreated {
		t.Fatalf("padded name: got %d want 201", rr.Code)
	}
}

func TestCreate_BadRequests(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/habits/", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json: got %d want 400", rr.Code)
	}

	rr = mockRequest(h, http.MethodPost, "/habits/", CreateHabitRequest{Name: strings.Repeat("x", maxNameLength+1)})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("long name: got %d want 400", rr.Code)
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	h, _ := newTestServer(t)

	rr := mockRequest(h, http.MethodPost, "/habits/424242/toggle", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	for _, s := range decodeSnapshot(t, rr).Habits {
		if s.DoneToday {
			t.Fatalf("habit %d changed by unknown-id toggle", s.ID)
		}
	}
}

func TestBadHabitID(t *testing.T) {
	h, _ := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/habits/abc/toggle"},
		{http.MethodDelete, "/habits/1.5"},
	} {
		rr := mockRequest(h, tc.method, tc.path, nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s %s: got %d want 400", tc.method, tc.path, rr.Code)
		}
		var e ErrorResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil || e.Error == "" {
			t.Errorf("%s %s: expected JSON error body, got %q", tc.method, tc.path, rr.Body.String())
		}
	}
}

func TestStorageError(t *testing.T) {
	h, kv := newTestServer(t)
	kv.FailPuts = errors.New("disk full")

	rr := mockRequest(h, http.MethodPost, "/habits/", CreateHabitRequest{Name: "guitar"})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d want 500", rr.Code)
	}
}

func TestVersion(t *testing.T) {
	h, _ := newTestServer(t)

	rr := mockRequest(h, http.MethodGet, "/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var info versioninfo.VersionInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if info.Version != versioninfo.Version {
		t.Fatalf("version = %q want %q", info.Version, versioninfo.Version)
	}
}

func TestMetrics(t *testing.T) {
	h, _ := newTestServer(t)
	mockRequest(h, http.MethodGet, "/habits/", nil)
	mockRequest(h, http.MethodPost, "/habits/1/toggle", nil)

	rr := mockRequest(h, http.MethodGet, "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"streaks_active_habits_total",
		"streaks_completion_rate_percent",
		`endpoint="/habits"`,
		`endpoint="/habits/{habit_id}/toggle",method="POST",status_code="200"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
	if strings.Contains(body, `endpoint="/habits/1/toggle"`) {
		t.Error("raw habit id leaked into the endpoint label")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
