package images

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// StyleOverride is the temporary style applied to an on-screen
// surface before capture so the snapshot reads well against the
// document's white page.
type StyleOverride struct {
	SolidBackground bool
	SquareCorners   bool
}

// SurfaceProvider is any on-screen element addressable by a stable
// logical id that can apply/revert a style override and produce a
// rasterized snapshot at a given scale factor.
type SurfaceProvider interface {
	ApplyStyle(ctx context.Context, surfaceID string, override StyleOverride) error
	RestoreStyle(ctx context.Context, surfaceID string) error
	Snapshot(ctx context.Context, surfaceID string, scale float64) ([]byte, error)
}

// SnapshotAcquirer captures chart surfaces through a SurfaceProvider.
// The style override is reverted on every exit path, capture failure
// included.
type SnapshotAcquirer struct {
	provider SurfaceProvider
	scale    float64
}

func NewSnapshotAcquirer(provider SurfaceProvider, scale float64) *SnapshotAcquirer {
	if scale <= 0 {
		scale = 2.0
	}
	return &SnapshotAcquirer{provider: provider, scale: scale}
}

// Acquire treats ref as a surface id and captures it.
func (s *SnapshotAcquirer) Acquire(ctx context.Context, ref string) (*Bitmap, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty surface id")
	}

	override := StyleOverride{SolidBackground: true, SquareCorners: true}
	if err := s.provider.ApplyStyle(ctx, ref, override); err != nil {
		return nil, fmt.Errorf("failed to apply capture style to %q: %w", ref, err)
	}
	defer func() {
		if err := s.provider.RestoreStyle(context.WithoutCancel(ctx), ref); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("surface", ref).Msg("failed to restore surface style")
		}
	}()

	data, err := s.provider.Snapshot(ctx, ref, s.scale)
	if err != nil {
		return nil, fmt.Errorf("failed to capture surface %q: %w", ref, err)
	}
	return FromBytes(ref, data)
}
