package schedclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// RecurrenceType is how often a schedule repeats.
type RecurrenceType string

const (
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
)

var weekdayAbbrev = map[string]string{
	"sunday":    "SUN",
	"monday":    "MON",
	"tuesday":   "TUE",
	"wednesday": "WED",
	"thursday":  "THU",
	"friday":    "FRI",
	"saturday":  "SAT",
}

// Recurrence describes when a schedule fires.
// Daily: every Interval days at At. Weekly: on Days at At, every Interval weeks
// (the service only honors Interval=1 for weekly; we keep the field for parity).
type Recurrence struct {
	Type     RecurrenceType `json:"type"`
	Interval int            `json:"interval"`
	Days     []string       `json:"days,omitempty"`
	At       string         `json:"at"` // "HH:MM", schedule-local
}

// Schedule is one scheduler entry as the service returns it.
type Schedule struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name"`
	TaskType string     `json:"task_type"`
	Payload  any        `json:"payload,omitempty"`
	Timezone string     `json:"timezone"`
	Recur    Recurrence `json:"recurrence"`
	NextRun  *time.Time `json:"next_run,omitempty"`
	Enabled  bool       `json:"enabled"`
}

// Stats is the scheduler statistics payload.
type Stats struct {
	Total     int `json:"total"`
	Enabled   int `json:"enabled"`
	Overdue   int `json:"overdue"`
	DueNext24 int `json:"due_next_24h"`
}

// Validate checks the fields the service would reject.
func (s *Schedule) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schedule name is required")
	}
	if s.Timezone == "" {
		return fmt.Errorf("schedule timezone is required")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return s.Recur.Validate()
}

// Validate checks recurrence shape.
func (r *Recurrence) Validate() error {
	switch r.Type {
	case RecurrenceDaily:
		if len(r.Days) > 0 {
			return fmt.Errorf("daily recurrence must not list days")
		}
	case RecurrenceWeekly:
		if len(r.Days) == 0 {
			return fmt.Errorf("weekly recurrence requires at least one day")
		}
		for _, d := range r.Days {
			if _, ok := weekdayAbbrev[strings.ToLower(d)]; !ok {
				return fmt.Errorf("unknown weekday %q", d)
			}
		}
	default:
		return fmt.Errorf("unknown recurrence type %q", r.Type)
	}
	if r.Interval < 1 {
		return fmt.Errorf("interval must be >= 1, got %d", r.Interval)
	}
	hh, mm, err := parseAt(r.At)
	if err != nil {
		return err
	}
	if hh > 23 || mm > 59 {
		return fmt.Errorf("time of day out of range: %q", r.At)
	}
	return nil
}

func parseAt(at string) (hh, mm int, err error) {
	if _, err := time.Parse("15:04", at); err != nil {
		return 0, 0, fmt.Errorf("time of day must be HH:MM, got %q", at)
	}
	fmt.Sscanf(at, "%d:%d", &hh, &mm)
	return hh, mm, nil
}

// CronSpec renders the recurrence as a standard 5-field cron expression.
// The daily interval uses a day-of-month step, matching what the scheduler
// service itself does.
func (r *Recurrence) CronSpec() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	hh, mm, _ := parseAt(r.At)
	switch r.Type {
	case RecurrenceDaily:
		if r.Interval == 1 {
			return fmt.Sprintf("%d %d * * *", mm, hh), nil
		}
		return fmt.Sprintf("%d %d */%d * *", mm, hh, r.Interval), nil
	default: // weekly
		days := make([]string, 0, len(r.Days))
		for _, d := range r.Days {
			days = append(days, weekdayAbbrev[strings.ToLower(d)])
		}
		return fmt.Sprintf("%d %d * * %s", mm, hh, strings.Join(days, ",")), nil
	}
}

// NextRunAfter computes the next fire time strictly after t, in the
// schedule's own timezone.
func (s *Schedule) NextRunAfter(t time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("loading timezone %q: %w", s.Timezone, err)
	}
	spec, err := s.Recur.CronSpec()
	if err != nil {
		return time.Time{}, err
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing cron spec %q: %w", spec, err)
	}
	return sched.Next(t.In(loc)), nil
}

// IsOverdue reports whether the schedule's next run is in the past.
func (s *Schedule) IsOverdue(now time.Time) bool {
	return s.Enabled && s.NextRun != nil && s.NextRun.Before(now)
}

// DueWithin reports whether the schedule fires within d of now.
func (s *Schedule) DueWithin(now time.Time, d time.Duration) bool {
	if !s.Enabled || s.NextRun == nil {
		return false
	}
	return !s.NextRun.Before(now) && s.NextRun.Before(now.Add(d))
}

// ComputeStats recomputes scheduler statistics from a schedule list,
// used by tests to cross-check the service's own stats endpoint.
func ComputeStats(schedules []Schedule, now time.Time) Stats {
	st := Stats{Total: len(schedules)}
	for i := range schedules {
		s := &schedules[i]
		if s.Enabled {
			st.Enabled++
		}
		if s.IsOverdue(now) {
			st.Overdue++
		}
		if s.DueWithin(now, 24*time.Hour) {
			st.DueNext24++
		}
	}
	return st
}
