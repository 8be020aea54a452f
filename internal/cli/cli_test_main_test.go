package cli_test

import (
	"testing"

	"taskmap.dev/taskmap/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}

// getTaskmapBinary returns the path to the pre-built taskmap binary.
func getTaskmapBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelpers.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelpers.GetBinaryError(); err != nil {
			t.Fatalf("failed to build taskmap binary: %v", err)
		}
		t.Fatal("taskmap binary not built")
	}
	return binaryPath
}
