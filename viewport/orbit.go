package viewport

import (
	"github.com/chewxy/math32"

	"haunted-house/math"
	"haunted-house/scene"
)

// restEpsilon is the pending motion below which damping snaps to rest.
const restEpsilon = 1e-6

// polarEpsilon keeps the camera off the poles, where the up vector would
// be parallel to the view direction.
const polarEpsilon = 1e-6

// OrbitControls orbits a camera around Target. Input accumulates as pending
// deltas; Update applies them. With damping each Update consumes
// DampingFactor of what is pending, so motion eases out over several frames.
type OrbitControls struct {
	Camera *scene.Camera
	Target math.Vec3

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	deltaTheta float32
	deltaPhi   float32
	deltaZoom  float32 // natural log of the pending radius factor
	panOffset  math.Vec3
}

func NewOrbitControls(cam *scene.Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		Target:        cam.Target,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
	}
}

// Rotate queues an orbit for a pointer drag of dx, dy pixels on a viewport
// of the given height. A full-height drag turns half a revolution.
func (o *OrbitControls) Rotate(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	o.deltaTheta -= 2 * math32.Pi * dx / float32(height) * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / float32(height) * o.RotateSpeed
}

// Pan queues a target shift so the point under the pointer follows a drag
// of dx, dy pixels.
func (o *OrbitControls) Pan(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	offset := o.Camera.Position.Sub(o.Target)
	distance := offset.Length() * math32.Tan(o.Camera.FOV*math32.Pi/360)
	scale := 2 * distance / float32(height) * o.PanSpeed

	view := o.Camera.ViewMatrix()
	right := math.NewVec3(view[0][0], view[1][0], view[2][0])
	up := math.NewVec3(view[0][1], view[1][1], view[2][1])
	o.panOffset = o.panOffset.Add(right.Mul(-dx * scale)).Add(up.Mul(dy * scale))
}

// Dolly queues a zoom. Positive steps move toward the target.
func (o *OrbitControls) Dolly(steps float32) {
	o.deltaZoom += steps * o.ZoomSpeed * math32.Log(0.95)
}

// Residual is the magnitude of motion queued but not yet applied.
func (o *OrbitControls) Residual() float32 {
	return math32.Abs(o.deltaTheta) + math32.Abs(o.deltaPhi) + math32.Abs(o.deltaZoom) + o.panOffset.Length()
}

// Update moves the camera by the pending motion. It reports whether the
// camera moved.
func (o *OrbitControls) Update() bool {
	if o.Residual() == 0 {
		return false
	}

	f := float32(1)
	if o.EnableDamping {
		f = o.DampingFactor
	}

	offset := o.Camera.Position.Sub(o.Target)
	radius := offset.Length()
	theta := math32.Atan2(offset.X, offset.Z)
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(clamp(offset.Y/radius, -1, 1))
	}

	theta += o.deltaTheta * f
	phi += o.deltaPhi * f
	phi = clamp(phi, math32.Max(o.MinPolarAngle, polarEpsilon), math32.Min(o.MaxPolarAngle, math32.Pi-polarEpsilon))

	radius *= math32.Exp(o.deltaZoom * f)
	radius = clamp(radius, o.MinDistance, o.MaxDistance)

	o.Target = o.Target.Add(o.panOffset.Mul(f))

	sinPhi, cosPhi := math32.Sincos(phi)
	sinTheta, cosTheta := math32.Sincos(theta)
	offset = math.NewVec3(radius*sinPhi*sinTheta, radius*cosPhi, radius*sinPhi*cosTheta)

	o.Camera.Position = o.Target.Add(offset)
	o.Camera.LookAt(o.Target)

	if o.EnableDamping {
		keep := 1 - f
		o.deltaTheta = settle(o.deltaTheta * keep)
		o.deltaPhi = settle(o.deltaPhi * keep)
		o.deltaZoom = settle(o.deltaZoom * keep)
		o.panOffset = o.panOffset.Mul(keep)
		if o.panOffset.Length() < restEpsilon {
			o.panOffset = math.Vec3Zero
		}
	} else {
		o.deltaTheta, o.deltaPhi, o.deltaZoom = 0, 0, 0
		o.panOffset = math.Vec3Zero
	}
	return true
}

func settle(v float32) float32 {
	if math32.Abs(v) < restEpsilon {
		return 0
	}
	return v
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
