package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/mathutil"
)

const (
	// velocityScale converts camera speed in scene units per second into a
	// fraction of light speed.
	velocityScale = 0.05
	maxCameraBeta = 0.5
)

func cameraBeta(vel mgl64.Vec3) mgl64.Vec3 {
	if !mathutil.Finite(vel) {
		return mgl64.Vec3{}
	}
	b := vel.Mul(velocityScale)
	if l := b.Len(); l > maxCameraBeta {
		b = b.Mul(maxCameraBeta / l)
	}
	return b
}

// Ray returns the world-space origin and unit direction of the ray through
// pixel coordinate (fx, fy), measured from the top-left corner. Pixel
// centres are at half-integer coordinates.
func (p *Program) Ray(fx, fy float64) (origin, dir mgl64.Vec3) {
	res := p.Uniforms.Resolution
	h := res[1]
	if h <= 0 {
		h = 1
	}
	ux := (fx - 0.5*res[0]) / h
	uy := (0.5*res[1] - fy) / h

	s := 2 * p.d.tanHalf
	dir = p.d.fwd.
		Add(p.d.right.Mul(ux * s)).
		Add(p.d.up.Mul(uy * s))
	dir = mathutil.Normalize(dir)

	if p.d.beta != (mgl64.Vec3{}) {
		dir = aberrate(dir, p.d.beta)
	}
	return p.Uniforms.CamPos, dir
}

// aberrate maps a view direction in the moving camera frame into the scene
// frame. Light arriving along -dir is boosted by velocity beta.
func aberrate(dir, beta mgl64.Vec3) mgl64.Vec3 {
	b2 := beta.Dot(beta)
	if b2 == 0 || b2 >= 1 {
		return dir
	}
	gamma := 1 / math.Sqrt(1-b2)
	u := dir.Mul(-1)
	bu := beta.Dot(u)
	den := 1 + bu
	if den < 1e-9 {
		return dir
	}
	k := 1 + gamma/(gamma+1)*bu
	out := u.Mul(1 / gamma).Add(beta.Mul(k)).Mul(1 / den)
	n := mathutil.Normalize(out.Mul(-1))
	if n == (mgl64.Vec3{}) {
		return dir
	}
	return n
}
