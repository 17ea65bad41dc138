package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeResult(name string, success bool) JobResult {
	now := time.Now()
	return JobResult{
		JobName:   name,
		StartTime: now,
		EndTime:   now.Add(time.Second),
		Duration:  time.Second,
		Success:   success,
	}
}

func TestJobHistory_AddResult_CapsAt100(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 150; i++ {
		h.AddResult(makeResult("job", true))
	}

	assert.Len(t, h.Results, 100)
}

func TestJobHistory_GetLatestResults(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(makeResult("job", true))
	h.AddResult(makeResult("job", false))
	h.AddResult(makeResult("job", true))

	latest := h.GetLatestResults(2)
	assert.Len(t, latest, 2)
	assert.False(t, latest[0].Success)
	assert.True(t, latest[1].Success)

	// Asking for more than stored returns everything
	assert.Len(t, h.GetLatestResults(10), 3)
}

func TestJobHistory_SuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.GetSuccessRate())

	h.AddResult(makeResult("job", true))
	h.AddResult(makeResult("job", true))
	h.AddResult(makeResult("job", false))
	h.AddResult(makeResult("job", false))

	assert.Equal(t, 0.5, h.GetSuccessRate())
	assert.Len(t, h.GetFailedResults(), 2)
}
