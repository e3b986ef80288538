package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	results := []Result{
		Must(CategoryAudio, SeverityCritical, "a"),
		Must(CategoryAudio, SeverityWarning, "b"),
		Must(CategoryVideo, SeverityWarning, "c"),
		Must(CategoryGPU, SeverityInfo, "d"),
		Must(CategorySystem, SeveritySuccess, "e"),
	}

	s := Summarize(results)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Critical)
	assert.Equal(t, 2, s.Warning)
	assert.Equal(t, 1, s.Info)
	assert.Equal(t, 1, s.Success)
	assert.True(t, s.HasCritical())
	assert.True(t, s.HasWarning())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)
	assert.False(t, s.HasCritical())
	assert.False(t, s.HasWarning())
}
