package gen

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/elektrokombinacija/planes-gen/internal/core"
)

// SpatialSampler draws uniform integer positions in [0,width) x [0,height).
type SpatialSampler struct {
	width  int
	height int
}

// NewSpatialSampler checks the bounds once; Sample does not.
func NewSpatialSampler(width, height int) (*SpatialSampler, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("area must be positive, got %dx%d", width, height)
	}
	return &SpatialSampler{width: width, height: height}, nil
}

// Sample draws one position from r.
func (s *SpatialSampler) Sample(r *rand.Rand) core.Position {
	return core.Position{
		X: r.Intn(s.width),
		Y: r.Intn(s.height),
	}
}
