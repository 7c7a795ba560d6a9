package workflows

import (
	"bytes"
	"context"
	"testing"

	"github.com/PolarWolf314/conson/internal/identity"
	logger "github.com/PolarWolf314/conson/internal/logging"
	"github.com/PolarWolf314/conson/internal/params"
)

const testMachineUUID = "4C4C4544-0042-3510-8052-B4C04F565931"

func newTestStore(t *testing.T, dir string, opts ...params.Option) *params.Store {
	t.Helper()
	base := []params.Option{
		params.WithDirectory(dir),
		params.WithIdentity(identity.Static(testMachineUUID)),
		params.WithSalt("pepper"),
	}
	return params.New(append(base, opts...)...)
}

func testLogger() (logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.Logger{Verbose: true, Out: &buf, Err: &buf}, &buf
}

// reopen returns a fresh store over the same file, as a new CLI invocation would see it.
func reopen(t *testing.T, s *params.Store) *params.Store {
	t.Helper()
	fresh := newTestStore(t, s.Directory(), params.WithFileName(s.FileName()), params.WithSalt(s.Salt()))
	if err := fresh.Load(); err != nil {
		t.Fatalf("Failed to reload %s: %v", fresh.File(), err)
	}
	return fresh
}

var ctx = context.Background()
