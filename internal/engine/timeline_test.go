package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
)

func TestBuildTimeline(t *testing.T) {
	tasks, err := SortTasks(sampleTasks(t), SortByPriority)
	require.NoError(t, err)

	tl := BuildTimeline(tasks)

	require.Len(t, tl.Bars, 5)
	assert.Equal(t, model.Bar{Name: "Task B", Type: model.TypePersonal, Start: at(10, 30), End: at(13, 0)}, tl.Bars[0])
	assert.Equal(t, at(9, 0), tl.From)
	assert.Equal(t, at(18, 0), tl.To)
}

func TestBuildTimeline_Empty(t *testing.T) {
	tl := BuildTimeline(nil)

	assert.Empty(t, tl.Bars)
	assert.True(t, tl.From.Equal(time.Time{}))
	assert.True(t, tl.To.Equal(time.Time{}))
}
