// Package frame drives the per-frame render loop: it applies parameter
// changes, moves the camera, binds uniforms, shades the frame and runs the
// post passes.
package frame

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"

	"kerr-renderer/internal/binder"
	"kerr-renderer/internal/camera"
	"kerr-renderer/internal/params"
	"kerr-renderer/internal/postprocess"
	"kerr-renderer/internal/raster"
	"kerr-renderer/internal/settings"
	"kerr-renderer/internal/texture"
)

// ErrClosed is returned by Tick after Close.
var ErrClosed = errors.New("frame: driver closed")

// State is the lifecycle of a driver.
type State int

const (
	Idle State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return "idle"
	}
}

// Store is the parameter store as the driver uses it.
type Store interface {
	params.Source
	Subscribe(settings.Listener) (cancel func())
}

// Options configure a driver.
type Options struct {
	Width       int
	Height      int
	Workers     int     // shading goroutines, 0 means one per CPU
	Exposure    float64 // tonemap exposure, 0 means 1
	Transparent bool    // alpha is coverage instead of 1
	// AsyncTextures decodes disk textures off the frame goroutine. The old
	// texture stays bound until the new one is ready.
	AsyncTextures bool
}

// Driver renders frames. Tick must be called from one goroutine; store
// notifications may arrive from any goroutine.
type Driver struct {
	store    Store
	textures *texture.Set
	rig      *camera.Rig
	binder   *binder.Binder
	bloom    *postprocess.Bloom
	fb       *raster.FrameBuffer
	out      *image.NRGBA
	log      *zap.Logger
	opts     Options

	params   params.RenderParameters
	diskName string
	state    State
	frames   int
	changed  bool

	mu      sync.Mutex
	dirty   bool
	reset   bool
	unwatch func()
}

// New loads the current parameters from store and compiles the program for
// their quality profile. Textures are not touched until the first Tick.
func New(store Store, textures *texture.Set, opts Options, log *zap.Logger) (*Driver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("frame: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Exposure <= 0 {
		opts.Exposure = 1
	}

	p := params.Load(store)
	b, err := binder.New(p.Quality(), textures, log)
	if err != nil {
		return nil, fmt.Errorf("frame: new driver: %w", err)
	}

	d := &Driver{
		store:    store,
		textures: textures,
		rig:      camera.New(),
		binder:   b,
		bloom:    postprocess.NewBloom(),
		fb:       raster.NewFrameBuffer(opts.Width, opts.Height),
		log:      log,
		opts:     opts,
		params:   p,
	}
	d.applyCamera(p)
	d.bloom.Workers = opts.Workers
	d.unwatch = store.Subscribe(d.onChange)
	return d, nil
}

func (d *Driver) onChange(ev settings.Event) {
	d.mu.Lock()
	d.dirty = true
	if ev.Reset {
		d.reset = true
	}
	d.mu.Unlock()
}

// Rig returns the camera so a host can rotate and zoom it between ticks.
func (d *Driver) Rig() *camera.Rig { return d.rig }

// Params returns the parameters of the last frame.
func (d *Driver) Params() params.RenderParameters { return d.params }

// State returns the lifecycle state.
func (d *Driver) State() State { return d.state }

// Frames returns how many frames were rendered.
func (d *Driver) Frames() int { return d.frames }

// Changed reports whether the last frame's uniforms differed from the one
// before it, other than time.
func (d *Driver) Changed() bool { return d.changed }

// Binder exposes the uniform binder.
func (d *Driver) Binder() *binder.Binder { return d.binder }

// Resize changes the render size from the next frame on.
func (d *Driver) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == d.fb.Width && h == d.fb.Height) {
		return
	}
	d.fb.Resize(w, h)
	d.opts.Width, d.opts.Height = w, h
}

// Size returns the render size.
func (d *Driver) Size() (w, h int) {
	return d.fb.Width, d.fb.Height
}

// Tick renders the frame at elapsed seconds since scene start. The returned
// image is reused by the next Tick.
func (d *Driver) Tick(elapsed float64) (*image.NRGBA, error) {
	switch d.state {
	case Closed:
		return nil, ErrClosed
	case Idle:
		d.textures.EnsureBackground()
		d.selectDisk(d.params)
		d.state = Running
		d.log.Debug("frame driver running", zap.Stringer("profile", d.binder.Profile()))
	}

	if err := d.applyPending(); err != nil {
		return nil, err
	}

	if !d.rig.AdvanceOrbit(elapsed) {
		d.rig.ClampDistance()
	}
	d.rig.Observe(elapsed)
	forward, _, up := d.rig.Basis()

	changed, err := d.binder.Sync(binder.FrameInput{
		Params: d.params,
		View: binder.View{
			Position: d.rig.Position,
			Forward:  forward,
			Up:       up,
			Velocity: d.rig.Velocity,
		},
		Time:        elapsed * params.TimeScale,
		Width:       d.fb.Width,
		Height:      d.fb.Height,
		Transparent: d.opts.Transparent,
	})
	if err != nil {
		return nil, fmt.Errorf("frame: sync: %w", err)
	}
	d.changed = changed

	prog, err := d.binder.Program()
	if err != nil {
		return nil, fmt.Errorf("frame: tick: %w", err)
	}
	raster.Dispatch(d.fb, d.opts.Workers, prog.Kernel())

	p := d.params
	d.bloom.Configure(p.BloomEnabled, p.BloomIntensity, p.BloomThreshold, p.BloomRadius)
	d.bloom.Apply(d.fb)

	d.out = raster.ToNRGBA(d.fb, d.out, d.opts.Exposure)
	d.frames++
	return d.out, nil
}

// applyPending folds store changes since the last tick into the frame
// state: parameters, disk texture, quality profile and, after a reset, the
// camera.
func (d *Driver) applyPending() error {
	d.mu.Lock()
	dirty, reset := d.dirty, d.reset
	d.dirty, d.reset = false, false
	d.mu.Unlock()
	if !dirty {
		return nil
	}

	next := params.Load(d.store)
	if next.DiskTexture != d.params.DiskTexture {
		d.selectDisk(next)
	}
	if q := next.Quality(); !q.Equal(d.binder.Profile()) {
		d.log.Info("quality profile changed", zap.Stringer("profile", q))
		if err := d.binder.Rebuild(q); err != nil {
			return fmt.Errorf("frame: rebuild: %w", err)
		}
	}
	if reset {
		p := params.InitialCamera
		d.rig = camera.New()
		d.log.Info("parameters reset", zap.Float64s("camera", p[:]))
	}
	d.applyCamera(next)
	d.params = next
	return nil
}

func (d *Driver) applyCamera(p params.RenderParameters) {
	d.rig.Orbit = p.Orbit
	d.rig.OrbitRadius = p.OrbitRadius
	d.rig.OrbitSpeed = p.OrbitSpeed
	d.rig.MinDistance = p.MinDistance
	d.rig.MaxDistance = p.MaxDistance
}

func (d *Driver) selectDisk(p params.RenderParameters) {
	name := p.DiskTextureName()
	if name == d.diskName && d.state != Idle {
		return
	}
	d.diskName = name
	d.log.Debug("disk texture selected", zap.String("texture", p.DiskTexture))
	if d.opts.AsyncTextures {
		d.textures.SelectDiskAsync(name)
		return
	}
	d.textures.SelectDisk(name)
}

// Close releases the program, the textures and the bloom buffers. It is
// safe to call more than once.
func (d *Driver) Close() {
	if d.state == Closed {
		return
	}
	d.state = Closed
	if d.unwatch != nil {
		d.unwatch()
	}
	d.binder.Release()
	d.textures.Close()
	d.bloom.Release()
	d.fb = raster.NewFrameBuffer(0, 0)
	d.out = nil
	d.log.Debug("frame driver closed", zap.Int("frames", d.frames))
}
