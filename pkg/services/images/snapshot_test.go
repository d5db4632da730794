package images

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	applied    []string
	restored   []string
	snapshotFn func(surfaceID string) ([]byte, error)
}

func (f *fakeSurface) ApplyStyle(_ context.Context, surfaceID string, _ StyleOverride) error {
	f.applied = append(f.applied, surfaceID)
	return nil
}

func (f *fakeSurface) RestoreStyle(_ context.Context, surfaceID string) error {
	f.restored = append(f.restored, surfaceID)
	return nil
}

func (f *fakeSurface) Snapshot(_ context.Context, surfaceID string, _ float64) ([]byte, error) {
	return f.snapshotFn(surfaceID)
}

func TestSnapshotAcquirer_RestoresStyleAfterCapture(t *testing.T) {
	data := pngBytes(t, 10, 10)
	surface := &fakeSurface{snapshotFn: func(string) ([]byte, error) { return data, nil }}
	acq := NewSnapshotAcquirer(surface, 2.0)

	bmp, err := acq.Acquire(context.Background(), "volume-chart")

	require.NoError(t, err)
	assert.Equal(t, 10, bmp.Width)
	assert.Equal(t, []string{"volume-chart"}, surface.applied)
	assert.Equal(t, []string{"volume-chart"}, surface.restored)
}

func TestSnapshotAcquirer_RestoresStyleOnCaptureFailure(t *testing.T) {
	surface := &fakeSurface{snapshotFn: func(string) ([]byte, error) {
		return nil, fmt.Errorf("element not found")
	}}
	acq := NewSnapshotAcquirer(surface, 2.0)

	_, err := acq.Acquire(context.Background(), "volume-chart")

	require.Error(t, err)
	// Restore must run even when the capture itself fails.
	assert.Equal(t, []string{"volume-chart"}, surface.restored)
}

func TestSnapshotAcquirer_RestoresStyleOnDecodeFailure(t *testing.T) {
	surface := &fakeSurface{snapshotFn: func(string) ([]byte, error) {
		return []byte("garbage"), nil
	}}
	acq := NewSnapshotAcquirer(surface, 2.0)

	_, err := acq.Acquire(context.Background(), "volume-chart")

	require.Error(t, err)
	assert.Equal(t, []string{"volume-chart"}, surface.restored)
}
