package testhelpers

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/config"
)

// Scene represents a test scene: a temporary project directory with an initialized workspace.
// Scenes never change the process working directory, so they are safe for parallel tests.
type Scene struct {
	T *testing.T
	// Dir is the project root
	Dir string
	// Workspace is the .taskmap directory inside Dir
	Workspace string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and workspace.
// Cleanup is handled by t.TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := t.TempDir()
	workspace, _, err := config.Init(dir)
	require.NoError(t, err, "failed to initialize workspace")

	scene := &Scene{T: t, Dir: dir, Workspace: workspace}
	if setup != nil {
		require.NoError(t, setup(scene), "scene setup failed")
	}
	return scene
}

// CliEnv returns the environment for running the binary inside the scene
func (s *Scene) CliEnv() []string {
	return append(os.Environ(),
		"TASKMAP_NON_INTERACTIVE=1",
		config.EnvDir+"=",
		"TASKMAP_LOG_FILE=",
	)
}

// RunCli runs the taskmap binary in the scene and returns its combined output
func (s *Scene) RunCli(binaryPath string, args ...string) (string, error) {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = s.Dir
	cmd.Env = s.CliEnv()
	output, err := cmd.CombinedOutput()
	return string(output), err
}
