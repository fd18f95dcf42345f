package telemetry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	tel := Noop()
	ctx, span := tel.Tracer.Start(context.Background(), "noop")
	tel.Sessions.Add(ctx, 1)
	tel.Generations.Add(ctx, 1, Outcome(errors.New("boom")))
	span.End()
}

func TestNewWritesTracesAndMetrics(t *testing.T) {
	dir := t.TempDir()

	tel, cleanup, err := New(context.Background(), dir, "test")
	require.NoError(t, err)

	ctx, span := tel.Tracer.Start(context.Background(), "detect")
	tel.Detections.Add(ctx, 1, Outcome(nil))
	span.End()

	cleanup()

	traces, err := os.ReadFile(filepath.Join(dir, "smartbite_traces.log"))
	require.NoError(t, err)
	assert.Contains(t, string(traces), `"Name":"detect"`)

	metrics, err := os.ReadFile(filepath.Join(dir, "smartbite_metrics.log"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "smartbite.detections")
}
