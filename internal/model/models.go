package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar-day format used for session dates.
const DateLayout = "2006-01-02"

// ID is an opaque gateway-assigned identifier. The gateway may send it as
// a JSON number or string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Task struct {
	ID          ID        `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	DueDate     time.Time `json:"dueDate"`
	IsExam      bool      `json:"isExam"`
	Completed   bool      `json:"completed"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := struct {
		*alias
		DueDate *string `json:"dueDate"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.DueDate = time.Time{}
	if aux.DueDate != nil {
		due, err := ParseTime(*aux.DueDate)
		if err != nil {
			return fmt.Errorf("task %s due date: %w", t.ID, err)
		}
		t.DueDate = due
	}
	return nil
}

type Note struct {
	ID        ID        `json:"id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) UnmarshalJSON(data []byte) error {
	type alias Note
	aux := struct {
		*alias
		CreatedAt *string `json:"createdAt"`
		UpdatedAt *string `json:"updatedAt"`
	}{alias: (*alias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	n.CreatedAt, n.UpdatedAt = time.Time{}, time.Time{}
	if aux.CreatedAt != nil {
		if n.CreatedAt, err = ParseTime(*aux.CreatedAt); err != nil {
			return fmt.Errorf("note %s createdAt: %w", n.ID, err)
		}
	}
	if aux.UpdatedAt != nil {
		if n.UpdatedAt, err = ParseTime(*aux.UpdatedAt); err != nil {
			return fmt.Errorf("note %s updatedAt: %w", n.ID, err)
		}
	}
	return nil
}

// Mode is the timer phase kind.
type Mode string

const (
	ModeStudy Mode = "study"
	ModeBreak Mode = "break"
)

// Next returns the mode that follows m. Study and Break strictly alternate.
func (m Mode) Next() Mode {
	if m == ModeStudy {
		return ModeBreak
	}
	return ModeStudy
}

func (m Mode) Label() string {
	if m == ModeBreak {
		return "Break"
	}
	return "Study"
}

// TimerSession records one completed phase.
type TimerSession struct {
	ID              ID     `json:"id,omitempty"`
	Mode            Mode   `json:"mode"`
	DurationMinutes int    `json:"duration"`
	Date            string `json:"date"`
}

// DailyStats is derived from the session list, never stored by the gateway.
type DailyStats struct {
	SessionsToday  int `json:"sessionsToday"`
	TotalStudyTime int `json:"totalStudyTime"` // minutes
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// ParseTime accepts the timestamp shapes the gateway and datetime-local
// form fields produce. Zone-less values are read as local time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// Day formats t as a calendar day in t's location.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
