package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("bluetooth")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestParseSeverity(t *testing.T) {
	for _, s := range Severities {
		got, err := ParseSeverity(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseSeverity("fatal")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "severity", verr.Field)
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := New(CategoryAudio, SeverityCritical, "Audio muted")
		require.NoError(t, err)
		assert.Equal(t, CategoryAudio, r.Category)
		assert.Equal(t, SeverityCritical, r.Severity)
		assert.Equal(t, "Audio muted", r.Message)
		assert.Empty(t, r.Fix)
		assert.False(t, r.HasCommand())
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := New(Category("midi"), SeverityInfo, "msg")
		require.Error(t, err)
	})

	t.Run("rejects unknown severity", func(t *testing.T) {
		_, err := New(CategoryAudio, Severity("fatal"), "msg")
		require.Error(t, err)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		_, err := New(CategoryAudio, SeverityInfo, "")
		require.Error(t, err)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "message", verr.Field)
	})
}

func TestMustPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		Must(Category("midi"), SeverityInfo, "msg")
	})
	assert.NotPanics(t, func() {
		Must(CategoryGPU, SeveritySuccess, "Driver loaded")
	})
}

func TestWithFix(t *testing.T) {
	r := Must(CategoryAudio, SeverityCritical, "Audio muted").
		WithFix("Unmute the default sink", "pactl set-sink-mute @DEFAULT_SINK@ 0")
	assert.Equal(t, "Unmute the default sink", r.Fix)
	assert.Equal(t, "pactl set-sink-mute @DEFAULT_SINK@ 0", r.Command)
	assert.True(t, r.HasCommand())

	advisory := Must(CategoryGPU, SeverityWarning, "Driver outdated").
		WithFix("Upgrade the NVIDIA driver from your distribution packages", "")
	assert.False(t, advisory.HasCommand())
	assert.NotEmpty(t, advisory.Fix)
}

func TestGroupByCategory(t *testing.T) {
	results := []Result{
		Must(CategoryVideo, SeverityWarning, "v1"),
		Must(CategoryAudio, SeverityCritical, "a1"),
		Must(CategoryVideo, SeverityInfo, "v2"),
		Must(CategoryAudio, SeveritySuccess, "a2"),
		Must(CategoryNetwork, SeverityInfo, "n1"),
	}

	groups := GroupByCategory(results)
	require.Len(t, groups, 3)

	// Group order follows first appearance, not declared category order.
	assert.Equal(t, CategoryVideo, groups[0].Category)
	assert.Equal(t, CategoryAudio, groups[1].Category)
	assert.Equal(t, CategoryNetwork, groups[2].Category)

	// Source order is preserved inside each group.
	assert.Equal(t, []string{"v1", "v2"}, messages(groups[0].Results))
	assert.Equal(t, []string{"a1", "a2"}, messages(groups[1].Results))
	assert.Equal(t, []string{"n1"}, messages(groups[2].Results))
}

func TestGroupByCategoryEmpty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
	assert.Empty(t, GroupByCategory([]Result{}))
}

func messages(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Message)
	}
	return out
}
