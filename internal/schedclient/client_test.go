package schedclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler is an in-memory stand-in for the scheduler service.
type fakeScheduler struct {
	mu        sync.Mutex
	schedules map[string]Schedule
	nextID    int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{schedules: map[string]Schedule{}}
}

func (f *fakeScheduler) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/schedules/stats", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		list := make([]Schedule, 0, len(f.schedules))
		for _, s := range f.schedules {
			list = append(list, s)
		}
		f.mu.Unlock()
		writeJSON(w, ComputeStats(list, time.Now()))
	})
	mux.HandleFunc("/api/schedules", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			f.mu.Lock()
			list := make([]Schedule, 0, len(f.schedules))
			for _, s := range f.schedules {
				list = append(list, s)
			}
			f.mu.Unlock()
			writeJSON(w, list)
		case http.MethodPost:
			var s Schedule
			if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.mu.Lock()
			f.nextID++
			s.ID = "sched-" + time.Now().Format("150405") + "-" + string(rune('a'+f.nextID%26))
			next, err := s.NextRunAfter(time.Now())
			if err == nil {
				s.NextRun = &next
			}
			f.schedules[s.ID] = s
			f.mu.Unlock()
			writeJSON(w, s)
		}
	})
	mux.HandleFunc("/api/schedules/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/api/schedules/"):]
		action := ""
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id, action = id[:i], id[i+1:]
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		s, ok := f.schedules[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch {
		case action == "pause" && r.Method == http.MethodPost:
			s.Enabled = false
			f.schedules[id] = s
			writeJSON(w, s)
		case action == "resume" && r.Method == http.MethodPost:
			s.Enabled = true
			f.schedules[id] = s
			writeJSON(w, s)
		case action == "" && r.Method == http.MethodGet:
			writeJSON(w, s)
		case action == "" && r.Method == http.MethodPut:
			var upd Schedule
			if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			upd.ID = id
			f.schedules[id] = upd
			writeJSON(w, upd)
		case action == "" && r.Method == http.MethodDelete:
			delete(f.schedules, id)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testSchedule() Schedule {
	return Schedule{
		Name:     "unit-schedule",
		TaskType: "reminder_email",
		Timezone: "UTC",
		Recur: Recurrence{
			Type:     RecurrenceDaily,
			Interval: 1,
			At:       "09:00",
		},
		Enabled: true,
	}
}

func TestClientCRUD(t *testing.T) {
	srv := httptest.NewServer(newFakeScheduler().handler())
	defer srv.Close()
	client := NewClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, client.Health(ctx))

	created, err := client.CreateSchedule(ctx, testSchedule())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.NextRun, "fake assigns next_run on create")

	got, err := client.GetSchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	list, err := client.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	upd := *created
	upd.Recur.At = "18:30"
	updated, err := client.UpdateSchedule(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "18:30", updated.Recur.At)

	paused, err := client.PauseSchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, paused.Enabled)

	resumed, err := client.ResumeSchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, resumed.Enabled)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)

	require.NoError(t, client.DeleteSchedule(ctx, created.ID))
	_, err = client.GetSchedule(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRejectsInvalidBeforeSending(t *testing.T) {
	// No server needed: validation fails client-side.
	client := NewClient("http://127.0.0.1:0")
	bad := testSchedule()
	bad.Timezone = "Not/AZone"
	_, err := client.CreateSchedule(context.Background(), bad)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestClientSchemaViolation(t *testing.T) {
	// Serve a schedule missing required fields; the client must refuse it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"name": "shapeless"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetSchedule(context.Background(), "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler contract")
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(newFakeScheduler().handler())
	defer srv.Close()
	client := NewClient(srv.URL)

	_, err := client.GetSchedule(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.Health(ctx)
	require.Error(t, err, "cancelled context should abort the call")
}
