// Package viewer is the interactive window host. It owns input, timing and
// presentation; everything it draws comes from a frame driver.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"kerr-renderer/internal/batch"
	"kerr-renderer/internal/frame"
	"kerr-renderer/internal/panel"
)

const (
	dragSensitivity = 0.005 // radians per pixel
	wheelZoomBase   = 0.9
	statusDuration  = 3 * time.Second
)

var groupKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Options configure the viewer.
type Options struct {
	// RenderScale is the render resolution relative to the window.
	RenderScale float64
}

// Game implements ebiten.Game.
type Game struct {
	driver *frame.Driver
	panel  *panel.Panel
	log    *zap.Logger
	opts   Options

	start    time.Time
	screenW  int
	screenH  int
	frameImg *ebiten.Image
	last     *image.NRGBA

	dragging     bool
	lastX, lastY int

	status      string
	statusUntil time.Time
	statusCh    chan string
	saving      bool
}

// New returns a game rendering through d and editing parameters through p.
func New(d *frame.Driver, p *panel.Panel, opts Options, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.RenderScale <= 0 || opts.RenderScale > 1 {
		opts.RenderScale = 0.5
	}
	return &Game{
		driver:   d,
		panel:    p,
		log:      log,
		opts:     opts,
		start:    time.Now(),
		statusCh: make(chan string, 4),
	}
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, w, h int) error {
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handlePointer()
	g.drainStatus()

	if g.screenW > 0 && g.screenH > 0 {
		w := max(int(float64(g.screenW)*g.opts.RenderScale), 1)
		h := max(int(float64(g.screenH)*g.opts.RenderScale), 1)
		g.driver.Resize(w, h)
	}

	img, err := g.driver.Tick(time.Since(g.start).Seconds())
	if err != nil {
		return fmt.Errorf("viewer: frame: %w", err)
	}
	g.last = img

	b := img.Bounds()
	if g.frameImg == nil || g.frameImg.Bounds().Dx() != b.Dx() || g.frameImg.Bounds().Dy() != b.Dy() {
		if g.frameImg != nil {
			g.frameImg.Deallocate()
		}
		g.frameImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frameImg.WritePixels(img.Pix)
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Visible = !g.panel.Visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.report(g.panel.Reset(), "parameters reset")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.snapshot()
	}

	if !g.panel.Visible {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.panel.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.panel.Move(1)
	case repeating(ebiten.KeyLeft):
		g.report(g.panel.Adjust(-1), "")
	case repeating(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.report(g.panel.Adjust(1), "")
	}

	// Number keys fold the groups.
	for i, grp := range g.panel.Groups() {
		if i >= len(groupKeys) {
			break
		}
		if inpututil.IsKeyJustPressed(groupKeys[i]) {
			g.panel.SetCollapsed(grp.Name, !grp.Collapsed)
		}
	}
}

// repeating reports a key press with auto-repeat while held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 20 && d%4 == 0)
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.dragging = true
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.dragging = false
	case g.dragging:
		dx, dy := x-g.lastX, y-g.lastY
		if dx != 0 || dy != 0 {
			g.driver.Rig().Rotate(-float64(dx)*dragSensitivity, float64(dy)*dragSensitivity)
		}
	}
	g.lastX, g.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.driver.Rig().Zoom(math.Pow(wheelZoomBase, wy))
	}
}

// snapshot copies the last frame and saves it from a background goroutine so
// the dialog does not stall rendering.
func (g *Game) snapshot() {
	if g.last == nil || g.saving {
		return
	}
	img := image.NewNRGBA(g.last.Rect)
	copy(img.Pix, g.last.Pix)
	g.saving = true

	go func() {
		path, err := zenity.SelectFileSave(
			zenity.Title("Save snapshot"),
			zenity.Filename("blackhole.webp"),
			zenity.ConfirmOverwrite(),
			zenity.FileFilters{{
				Name:     "WebP image",
				Patterns: []string{"*.webp"},
			}},
		)
		switch {
		case errors.Is(err, zenity.ErrCanceled):
			g.statusCh <- ""
		case err != nil:
			g.statusCh <- "snapshot failed: " + err.Error()
		default:
			if !strings.HasSuffix(strings.ToLower(path), ".webp") {
				path += ".webp"
			}
			if err := batch.WriteWebP(path, img); err != nil {
				g.statusCh <- "snapshot failed: " + err.Error()
				return
			}
			g.statusCh <- "saved " + path
		}
	}()
}

func (g *Game) drainStatus() {
	for {
		select {
		case msg := <-g.statusCh:
			g.saving = false
			if msg != "" {
				g.setStatus(msg)
			}
		default:
			return
		}
	}
}

func (g *Game) report(err error, ok string) {
	if err != nil {
		g.log.Warn("panel", zap.Error(err))
		g.setStatus(err.Error())
		return
	}
	if ok != "" {
		g.setStatus(ok)
	}
}

func (g *Game) setStatus(msg string) {
	g.log.Info(msg)
	g.status = msg
	g.statusUntil = time.Now().Add(statusDuration)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frameImg != nil {
		op := &ebiten.DrawImageOptions{}
		fb := g.frameImg.Bounds()
		sb := screen.Bounds()
		op.GeoM.Scale(float64(sb.Dx())/float64(fb.Dx()), float64(sb.Dy())/float64(fb.Dy()))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.frameImg, op)
	}

	if g.panel.Visible {
		help := "drag: orbit  wheel: zoom  up/down/left/right: edit  1-6: fold  R: reset  P: snapshot  F: fullscreen  Tab: panel  Esc: quit"
		ebitenutil.DebugPrintAt(screen, g.panel.String(), 12, 12)
		ebitenutil.DebugPrintAt(screen, help, 12, screen.Bounds().Dy()-20)
	}
	if g.status != "" && time.Now().Before(g.statusUntil) {
		ebitenutil.DebugPrintAt(screen, g.status, 12, screen.Bounds().Dy()-40)
	}
	w, h := g.driver.Size()
	hud := fmt.Sprintf("%.0f fps  %dx%d  r=%.1f", ebiten.ActualFPS(), w, h, g.driver.Rig().Distance())
	ebitenutil.DebugPrintAt(screen, hud, screen.Bounds().Dx()-200, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
