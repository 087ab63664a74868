package viz

import (
	"math"

	"github.com/san-kum/solarsys/internal/nbody"
)

// Camera looks down on the orbital plane. Tilt rotates about the x axis,
// Spin about the z axis. Extent is the half-width of the view in metres at
// zoom 1.
type Camera struct {
	Tilt, Spin float64
	Zoom       float64
	Extent     float64
}

func NewCamera(extent float64) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{Zoom: 1, Extent: extent}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(1000, c.Zoom*1.25) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.01, c.Zoom/1.25) }

func (c *Camera) rotate(p nbody.Vector3) nbody.Vector3 {
	cz, sz := math.Cos(c.Spin), math.Sin(c.Spin)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cx, sx := math.Cos(c.Tilt), math.Sin(c.Tilt)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project maps a position to sub-pixel coordinates on a sw x sh canvas,
// centred on the origin. ok is false when the point falls outside.
func (c *Camera) Project(p nbody.Vector3, sw, sh int) (x, y int, ok bool) {
	r := c.rotate(p)
	half := math.Min(float64(sw), float64(sh)) / 2
	scale := half * c.Zoom / c.Extent
	x = int(math.Round(r.X*scale)) + sw/2
	y = int(math.Round(-r.Y*scale)) + sh/2
	return x, y, x >= 0 && x < sw && y >= 0 && y < sh
}

// FitExtent returns 1.1 times the largest distance from the origin.
func FitExtent(sys *nbody.System) float64 {
	extent := 0.0
	for i := 0; i < sys.Len(); i++ {
		extent = math.Max(extent, sys.Body(i).Position.Norm())
	}
	if extent == 0 {
		return 1
	}
	return 1.1 * extent
}
