package softbackend

import (
	"fmt"

	"github.com/user/vidsink/pkg/ports"
)

// Scale resizes frames to a fixed size.
type Scale struct {
	Width  int
	Height int
}

// OutputSize returns the fixed target size.
func (s Scale) OutputSize(width, height int) (int, int) {
	return s.Width, s.Height
}

var _ ports.Transform = Scale{}

// Rotate rotates frames counterclockwise by a multiple of 90 degrees.
type Rotate struct {
	Degrees int
}

// NewRotate creates a rotation transform. Degrees must be 0, 90, 180 or 270.
func NewRotate(degrees int) Rotate {
	switch degrees {
	case 0, 90, 180, 270:
		return Rotate{Degrees: degrees}
	default:
		panic(fmt.Sprintf("softbackend: invalid rotation %d", degrees))
	}
}

// OutputSize swaps width and height for quarter turns.
func (r Rotate) OutputSize(width, height int) (int, int) {
	if r.Degrees == 90 || r.Degrees == 270 {
		return height, width
	}
	return width, height
}

var _ ports.Transform = Rotate{}
