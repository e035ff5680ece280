package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/glint/pkg/math3d"
)

// ErrDegenerateCamera is returned by Camera.Validate when the image plane
// has no area or lies at a non-positive distance.
var ErrDegenerateCamera = errors.New("degenerate camera")

// Camera is a pinhole camera looking down -Z. The image plane is the
// rectangle [Left, Right] x [Bottom, Top] at distance Distance in front of
// the eye.
type Camera struct {
	// Position in world space
	Eye math3d.Vec3

	// Image-plane rectangle
	Left     float64
	Right    float64
	Bottom   float64
	Top      float64
	Distance float64
}

// NewCamera creates a camera from an eye position and image-plane bounds.
func NewCamera(eye math3d.Vec3, left, right, bottom, top, distance float64) Camera {
	return Camera{
		Eye:      eye,
		Left:     left,
		Right:    right,
		Bottom:   bottom,
		Top:      top,
		Distance: distance,
	}
}

// DefaultCamera returns the camera of the built-in scene: eye at the origin
// with a 0.2 x 0.2 image plane at distance 0.1 (a 90 degree field of view).
func DefaultCamera() Camera {
	return NewCamera(math3d.Zero3(), -0.1, 0.1, -0.1, 0.1, 0.1)
}

// Validate reports a degenerate image plane. GenerateRay does not check;
// callers that accept user configuration should.
func (c Camera) Validate() error {
	switch {
	case c.Right == c.Left:
		return fmt.Errorf("%w: zero image-plane width", ErrDegenerateCamera)
	case c.Top == c.Bottom:
		return fmt.Errorf("%w: zero image-plane height", ErrDegenerateCamera)
	case c.Distance <= 0:
		return fmt.Errorf("%w: image-plane distance %v", ErrDegenerateCamera, c.Distance)
	case !c.Eye.IsFinite():
		return fmt.Errorf("%w: eye %v", ErrDegenerateCamera, c.Eye)
	}
	return nil
}

// GenerateRay returns the ray through pixel (i, j) of a width x height
// image. Offsets in [0,1) select the position inside the pixel; 0.5, 0.5 is
// the pixel center. j = 0 is the bottom row.
func (c Camera) GenerateRay(i, j, width, height int, uOffset, vOffset float64) math3d.Ray {
	u := c.Left + (c.Right-c.Left)*(float64(i)+uOffset)/float64(width)
	v := c.Bottom + (c.Top-c.Bottom)*(float64(j)+vOffset)/float64(height)
	return math3d.NewRay(c.Eye, math3d.V3(u, v, -c.Distance))
}

// CenterRay returns the ray through the center of pixel (i, j).
func (c Camera) CenterRay(i, j, width, height int) math3d.Ray {
	return c.GenerateRay(i, j, width, height, 0.5, 0.5)
}

// FitAspect returns a copy of the camera whose horizontal extent is scaled
// so that the image plane has the aspect ratio of a width x height image.
// The vertical extent is kept, so resizing a window widens or narrows the
// view instead of stretching it.
func (c Camera) FitAspect(width, height int) Camera {
	if width <= 0 || height <= 0 || c.Top == c.Bottom {
		return c
	}

	aspect := float64(width) / float64(height)
	center := (c.Left + c.Right) / 2
	half := (c.Top - c.Bottom) * aspect / 2
	if c.Right < c.Left {
		half = -half
	}

	c.Left = center - half
	c.Right = center + half
	return c
}
