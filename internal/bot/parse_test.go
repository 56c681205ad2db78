package bot

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/engine"
	"task-planner/internal/model"
)

var ref = time.Date(2024, 11, 23, 8, 15, 0, 0, time.UTC)

func TestParseWhen(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     time.Time
		dateOnly bool
		wantErr  bool
	}{
		{name: "full", in: "2024-11-24 09:30", want: time.Date(2024, 11, 24, 9, 30, 0, 0, time.UTC)},
		{name: "clock on ref day", in: " 17:05 ", want: time.Date(2024, 11, 23, 17, 5, 0, 0, time.UTC)},
		{name: "date only", in: "2024-12-01", want: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), dateOnly: true},
		{name: "garbage", in: "tomorrow", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dateOnly, err := parseWhen(tt.in, ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, errBadTime)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.dateOnly, dateOnly)
		})
	}
}

func TestParseWhen_UsesRefLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got, _, err := parseWhen("10:00", ref.In(loc))
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 10, got.Hour())
}

func TestParsePriority(t *testing.T) {
	for _, in := range []string{"1", " 3", "5"} {
		_, err := parsePriority(in)
		assert.NoError(t, err, in)
	}
	for _, in := range []string{"0", "6", "high", ""} {
		_, err := parsePriority(in)
		assert.ErrorIs(t, err, errBadPriority, in)
	}
}

func TestParseTaskLine(t *testing.T) {
	input, err := parseTaskLine("Research | academic | 3 | 09:00 | 10:00 | 2024-11-23 12:00", ref)
	require.NoError(t, err)

	assert.Equal(t, "Research", input.Name)
	assert.Equal(t, model.TypeAcademic, input.Type)
	assert.Equal(t, 3, input.Priority)
	assert.True(t, input.Start.Equal(time.Date(2024, 11, 23, 9, 0, 0, 0, time.UTC)))
	assert.True(t, input.End.Equal(time.Date(2024, 11, 23, 10, 0, 0, 0, time.UTC)))
	assert.True(t, input.Deadline.Equal(time.Date(2024, 11, 23, 12, 0, 0, 0, time.UTC)))

	t.Run("clock times follow the start day", func(t *testing.T) {
		input, err := parseTaskLine("Trip | Personal | 2 | 2024-11-25 07:00 | 09:00 | 18:00", ref)
		require.NoError(t, err)
		assert.Equal(t, 25, input.End.Day())
		assert.Equal(t, 25, input.Deadline.Day())
	})

	bad := []string{
		"Research | Academic | 3 | 09:00 | 10:00",
		"Research | Work | 3 | 09:00 | 10:00 | 12:00",
		"Research | Academic | 9 | 09:00 | 10:00 | 12:00",
		"Research | Academic | 3 | soon | 10:00 | 12:00",
	}
	for _, line := range bad {
		_, err := parseTaskLine(line, ref)
		assert.Error(t, err, line)
	}
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2024-11-23 | 2024-11-24", ref)
	require.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2024, 11, 23, 0, 0, 0, 0, time.UTC)))
	assert.True(t, to.Equal(time.Date(2024, 11, 24, 23, 59, 0, 0, time.UTC)))

	from, to, err = parseRange("2024-11-23 09:00 | 18:00", ref)
	require.NoError(t, err)
	assert.Equal(t, 9, from.Hour())
	assert.True(t, to.Equal(time.Date(2024, 11, 23, 18, 0, 0, 0, time.UTC)))

	_, _, err = parseRange("2024-11-24 | 2024-11-23 10:00", ref)
	assert.Error(t, err)
	_, _, err = parseRange("2024-11-24", ref)
	assert.Error(t, err)
}

func TestParseTaskID(t *testing.T) {
	id, err := parseTaskID("delete:42", cbDeletePrefix)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = parseTaskID(" 7 ", "")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, in := range []string{"", "0", "-3", "delete:x"} {
		_, err := parseTaskID(in, cbDeletePrefix)
		assert.ErrorIs(t, err, errBadTaskID, in)
	}
}

func TestParseHours(t *testing.T) {
	h, err := parseHours("", 8)
	require.NoError(t, err)
	assert.Equal(t, 8, h)

	h, err = parseHours("0", 8)
	require.NoError(t, err)
	assert.Equal(t, 0, h)

	_, err = parseHours("-1", 8)
	assert.ErrorIs(t, err, errBadHours)
	_, err = parseHours("2.5", 8)
	assert.ErrorIs(t, err, errBadHours)

	h, err = parseHours(strconv.Itoa(engine.MaxCapacityHours), 8)
	require.NoError(t, err)
	assert.Equal(t, engine.MaxCapacityHours, h)
	for _, in := range []string{strconv.Itoa(engine.MaxCapacityHours + 1), "9223372036854775807"} {
		_, err = parseHours(in, 8)
		assert.ErrorIs(t, err, errBadHours, in)
	}
}

func TestParseMinutes(t *testing.T) {
	d, err := parseMinutes(" 30 ")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, d)

	d, err = parseMinutes("1440")
	require.NoError(t, err)
	assert.Equal(t, engine.MaxDensityInterval, d)

	for _, in := range []string{"", "0", "-5", "1441", "half", "9223372036854775807"} {
		_, err := parseMinutes(in)
		assert.ErrorIs(t, err, errBadMinutes, in)
	}
}
