package collect

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// stubTool installs a fake tool in dir. Tests set PATH to dir alone so every
// unstubbed tool counts as missing; the scripts run via their #!/bin/sh
// shebang (which does not consult PATH) and must stick to shell builtins.
func stubTool(t *testing.T, dir, name, script string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

func newTestRunner() *toolexec.Runner {
	return toolexec.NewRunner(zap.NewNop(), 5*time.Second)
}
