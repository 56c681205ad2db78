package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"task-planner/internal/engine"
	"task-planner/internal/model"
	"task-planner/internal/service"
)

const (
	dateTimeLayout = "2006-01-02 15:04"
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
)

var (
	errBadTime     = errors.New("cannot read time")
	errBadPriority = errors.New("priority must be a number from 1 to 5")
	errBadHours    = fmt.Errorf("hours must be a whole number from 0 to %d", engine.MaxCapacityHours)
	errBadTaskID   = errors.New("bad task id")
	errBadMinutes  = fmt.Errorf("minutes must be a whole number from 1 to %d", int(engine.MaxDensityInterval/time.Minute))
)

// parseWhen reads a full timestamp, a clock time on ref's day, or a bare date.
// dateOnly reports the last case; the result is then midnight of that day.
func parseWhen(text string, ref time.Time) (time.Time, bool, error) {
	text = strings.TrimSpace(text)
	loc := ref.Location()

	if t, err := time.ParseInLocation(dateTimeLayout, text, loc); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation(clockLayout, text, loc); err == nil {
		y, m, d := ref.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), false, nil
	}
	if t, err := time.ParseInLocation(dateLayout, text, loc); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: %q", errBadTime, text)
}

func parsePriority(text string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || p < model.MinPriority || p > model.MaxPriority {
		return 0, errBadPriority
	}
	return p, nil
}

// parseTaskLine reads "name | type | priority | start | end | deadline".
// End and deadline given as a clock time are taken on the start day.
func parseTaskLine(text string, now time.Time) (service.TaskInput, error) {
	parts := strings.Split(text, "|")
	if len(parts) != 6 {
		return service.TaskInput{}, errors.New("expected 6 fields separated by |")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	taskType, err := model.ParseTaskType(parts[1])
	if err != nil {
		return service.TaskInput{}, err
	}
	priority, err := parsePriority(parts[2])
	if err != nil {
		return service.TaskInput{}, err
	}
	start, _, err := parseWhen(parts[3], now)
	if err != nil {
		return service.TaskInput{}, fmt.Errorf("start: %w", err)
	}
	end, _, err := parseWhen(parts[4], start)
	if err != nil {
		return service.TaskInput{}, fmt.Errorf("end: %w", err)
	}
	deadline, _, err := parseWhen(parts[5], start)
	if err != nil {
		return service.TaskInput{}, fmt.Errorf("deadline: %w", err)
	}

	return service.TaskInput{
		Name:     parts[0],
		Type:     taskType,
		Priority: priority,
		Start:    start,
		End:      end,
		Deadline: deadline,
	}, nil
}

// parseRange reads "from | to". A bare date as the upper bound covers the
// whole day.
func parseRange(text string, now time.Time) (time.Time, time.Time, error) {
	parts := strings.Split(text, "|")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, errors.New("expected from | to")
	}
	from, _, err := parseWhen(parts[0], now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, dateOnly, err := parseWhen(parts[1], from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if dateOnly {
		to = to.AddDate(0, 0, 1).Add(-time.Minute)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("range ends before it starts")
	}
	return from, to, nil
}

// parseMinutes reads a busy-slot width in whole minutes, at most one day.
func parseMinutes(text string) (time.Duration, error) {
	m, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || m <= 0 || m > int(engine.MaxDensityInterval/time.Minute) {
		return 0, errBadMinutes
	}
	return time.Duration(m) * time.Minute, nil
}

// parseTaskID reads a task id, optionally behind a callback prefix.
func parseTaskID(data, prefix string) (uint, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(data, prefix))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", errBadTaskID, raw)
	}
	return uint(id), nil
}

// parseHours reads a planning budget within [0, engine.MaxCapacityHours] and
// returns fallback for empty input.
func parseHours(text string, fallback int) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback, nil
	}
	h, err := strconv.Atoi(text)
	if err != nil || h < 0 || h > engine.MaxCapacityHours {
		return 0, errBadHours
	}
	return h, nil
}
