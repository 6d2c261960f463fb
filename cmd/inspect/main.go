package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"kerr-renderer/internal/binder"
	"kerr-renderer/internal/camera"
	"kerr-renderer/internal/params"
	"kerr-renderer/internal/shader"
)

func main() {
	width := flag.Int("width", 640, "Frame width")
	height := flag.Int("height", 360, "Frame height")
	spin := flag.Float64("spin", params.SpinDefault, "Dimensionless spin a*")
	disk := flag.String("disk", params.DiskBlackbody, "Disk colormap identifier")
	performance := flag.Bool("performance", true, "Use the low quality profile")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] x y")
		os.Exit(2)
	}
	x, errX := strconv.ParseFloat(flag.Arg(0), 64)
	y, errY := strconv.ParseFloat(flag.Arg(1), 64)
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "Error: x and y must be numbers")
		os.Exit(2)
	}

	p := params.Defaults()
	p.Spin = *spin
	p.DiskTexture = *disk
	p.Performance = *performance
	p = p.Clamp()

	b, err := binder.New(p.Quality(), nil, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rig := camera.New()
	in := binder.FrameInput{
		Params: p,
		View:   binder.View{Position: rig.Position, Forward: rig.Forward, Up: rig.Up},
		Width:  *width,
		Height: *height,
	}
	if err := report(os.Stdout, b, in, x, y); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// report traces pixel (x, y) through b and writes the result to w.
func report(w io.Writer, b *binder.Binder, in binder.FrameInput, x, y float64) error {
	if _, err := b.Sync(in); err != nil {
		return fmt.Errorf("inspect: sync uniforms: %w", err)
	}
	prog, err := b.Program()
	if err != nil {
		return fmt.Errorf("inspect: program: %w", err)
	}

	// Pixel centres sit on half-integers.
	fx, fy := x+0.5, y+0.5
	origin, dir := prog.Ray(fx, fy)
	tr := prog.TraceRay(origin, dir)
	c := prog.Shade(fx, fy)
	p := in.Params

	fmt.Fprintf(w, "Profile: %s\n", b.Profile())
	fmt.Fprintf(w, "Spin: %.3f  Horizon r+: %.4f  Escape r: %.3f\n", p.Spin, shader.HorizonRadius(p.Spin), prog.EscapeRadius())
	fmt.Fprintf(w, "Ray: origin=(%.3f, %.3f, %.3f) dir=(%.4f, %.4f, %.4f)\n",
		origin[0], origin[1], origin[2], dir[0], dir[1], dir[2])
	fmt.Fprintf(w, "Result: %s after %d steps", tr.Kind, tr.Steps)
	if tr.Exhausted {
		fmt.Fprint(w, " (budget exhausted)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  radius=%.4f  closest approach=%.4f\n", tr.Radius, tr.MinRadius)
	if tr.Kind == shader.Disk {
		fmt.Fprintf(w, "  crossing=(%.3f, 0, %.3f)\n", tr.Hit[0], tr.Hit[2])
	}
	fmt.Fprintf(w, "  exit dir=(%.4f, %.4f, %.4f)\n", tr.Direction[0], tr.Direction[1], tr.Direction[2])
	fmt.Fprintf(w, "Colour (linear HDR): R=%.4f G=%.4f B=%.4f A=%.2f\n", c.R, c.G, c.B, c.A)
	return nil
}
