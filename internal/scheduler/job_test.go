package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobHistoryBounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "job", Success: true})
	}
	assert.Len(t, h.Results, 100)
}

func TestJobHistoryLatestResults(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(JobResult{JobName: "a", Success: true})
	h.AddResult(JobResult{JobName: "b", Success: false})
	h.AddResult(JobResult{JobName: "c", Success: true})

	latest := h.GetLatestResults(2)
	assert.Len(t, latest, 2)
	assert.Equal(t, "b", latest[0].JobName)
	assert.Equal(t, "c", latest[1].JobName)

	assert.Empty(t, h.GetLatestResults(0))
	assert.Len(t, h.GetLatestResults(10), 3)
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.GetSuccessRate())

	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: true})

	assert.InDelta(t, 0.75, h.GetSuccessRate(), 1e-12)
}
