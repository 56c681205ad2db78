package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Priority bounds, 5 being the most important.
const (
	MinPriority = 1
	MaxPriority = 5
)

// TaskType groups tasks for display. It never influences scheduling.
type TaskType string

const (
	TypePersonal TaskType = "Personal"
	TypeAcademic TaskType = "Academic"
)

// TaskTypes lists every known task type in display order.
var TaskTypes = []TaskType{TypePersonal, TypeAcademic}

// ParseTaskType matches s against the known task types, ignoring case.
func ParseTaskType(s string) (TaskType, error) {
	s = strings.TrimSpace(s)
	for _, tt := range TaskTypes {
		if strings.EqualFold(s, string(tt)) {
			return tt, nil
		}
	}
	return "", &ValidationError{Field: "type", Err: fmt.Errorf("%w %q", ErrUnknownTaskType, s)}
}

// String returns the display string
func (t TaskType) String() string {
	return string(t)
}

// Validation failures reported by NewTask. Match them with errors.Is.
var (
	ErrEmptyName        = errors.New("name is required")
	ErrUnknownTaskType  = errors.New("unknown task type")
	ErrInvalidPriority  = errors.New("priority must be between 1 and 5")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidDeadline  = errors.New("deadline must be after start time")
)

// ValidationError reports which task attribute was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Task is a single planner entry. Values are immutable: build them with
// NewTask and replace them to edit.
type Task struct {
	id       uint
	name     string
	taskType TaskType
	priority int
	start    time.Time
	end      time.Time
	deadline time.Time
}

// NewTask validates the attributes and returns the task.
func NewTask(name string, taskType TaskType, priority int, start, end, deadline time.Time) (Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Task{}, &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if _, err := ParseTaskType(string(taskType)); err != nil {
		return Task{}, err
	}
	if priority < MinPriority || priority > MaxPriority {
		return Task{}, &ValidationError{Field: "priority", Err: fmt.Errorf("%w, got %d", ErrInvalidPriority, priority)}
	}
	if !start.Before(end) {
		return Task{}, &ValidationError{Field: "time range", Err: ErrInvalidTimeRange}
	}
	if !deadline.After(start) {
		return Task{}, &ValidationError{Field: "deadline", Err: ErrInvalidDeadline}
	}
	return Task{
		name:     name,
		taskType: taskType,
		priority: priority,
		start:    start,
		end:      end,
		deadline: deadline,
	}, nil
}

// WithID returns a copy of the task carrying the storage identifier.
func (t Task) WithID(id uint) Task {
	t.id = id
	return t
}

// ID is zero until the task has been stored.
func (t Task) ID() uint            { return t.id }
func (t Task) Name() string        { return t.name }
func (t Task) Type() TaskType      { return t.taskType }
func (t Task) Priority() int       { return t.priority }
func (t Task) Start() time.Time    { return t.start }
func (t Task) End() time.Time      { return t.end }
func (t Task) Deadline() time.Time { return t.deadline }

// Duration is the span between start and end.
func (t Task) Duration() time.Duration {
	return t.end.Sub(t.start)
}

// Bar returns what a timeline needs to draw this task.
func (t Task) Bar() Bar {
	return Bar{Name: t.name, Type: t.taskType, Start: t.start, End: t.end}
}

func (t Task) String() string {
	return fmt.Sprintf("Task: %s, Type: %s, Priority: %d - From %s to %s",
		t.name, t.taskType, t.priority, t.start.Format("15:04"), t.end.Format("15:04"))
}

// Bar is one row of a timeline chart.
type Bar struct {
	Name  string
	Type  TaskType
	Start time.Time
	End   time.Time
}
