package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "07:30", want: "0 30 7 * * *"},
		{input: " 23:05 ", want: "0 5 23 * * *"},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := buildDailySpec(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildIntervalSpec(t *testing.T) {
	spec, err := buildIntervalSpec(time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "@every 60s", spec)

	spec, err = buildIntervalSpec(200 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "@every 1s", spec)

	_, err = buildIntervalSpec(0)
	assert.Error(t, err)
}

func TestSchedulerService_NextAfterStart(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	id, err := s.ScheduleInterval(time.Hour, func() {})
	require.NoError(t, err)
	daily, err := s.ScheduleDaily("06:00", func() {})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next(id)
	assert.WithinDuration(t, time.Now().Add(time.Hour), next, 5*time.Second)
	assert.Equal(t, 6, s.Next(daily).Hour())
}
