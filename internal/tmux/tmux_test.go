package tmux

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSessionName(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"passthrough", "avdoctor", "avdoctor"},
		{"spaces become hyphens", "studio box 2", "studio-box-2"},
		{"mixed case and punctuation", "My.Workstation!", "my-workstation"},
		{"collapses runs", "a___b", "a-b"},
		{"empty falls back to default", "", DefaultSessionName},
		{"only punctuation falls back to default", "!!!", DefaultSessionName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSessionName(tt.label))
		})
	}
}

func TestEscapeTmuxString(t *testing.T) {
	assert.Equal(t, `it'"'"'s fine`, escapeTmuxString("it's fine"))
	assert.Equal(t, `a\\b`, escapeTmuxString(`a\b`))
}

func TestOutputManagerFallsBackToWriter(t *testing.T) {
	var buf bytes.Buffer

	t.Run("tmux not preferred", func(t *testing.T) {
		om, err := NewOutputManager(false, &buf, &Config{SessionName: DefaultSessionName})
		require.NoError(t, err)

		assert.False(t, om.IsTmuxMode())
		assert.Equal(t, "stdout", om.ModeString())
		assert.Empty(t, om.AttachCommand())

		_, err = om.Writer().Write([]byte("report line\n"))
		require.NoError(t, err)
		assert.Equal(t, "report line\n", buf.String())

		om.Cleanup()
	})

	t.Run("tmux binary missing", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())

		om, err := NewOutputManager(true, &buf, &Config{SessionName: DefaultSessionName})
		require.NoError(t, err)
		assert.False(t, om.IsTmuxMode())
		assert.Nil(t, om.TmuxManager())
	})
}
