package raster

// Color is a linear HDR colour. Components may exceed 1 before tonemapping.
type Color struct {
	R, G, B, A float64
}

// Add returns c + o on every channel.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale multiplies the RGB channels by s, leaving alpha alone.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Luminance returns the Rec. 709 luma of the RGB channels.
func (c Color) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// FrameBuffer holds the rendering target as a flat slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []float32 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a zeroed (transparent black) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]float32, w*h*4),
	}
}

// Resize changes the dimensions, reusing the backing slice when it is big
// enough. Contents are cleared.
func (fb *FrameBuffer) Resize(w, h int) {
	n := w * h * 4
	if cap(fb.Pix) >= n {
		fb.Pix = fb.Pix[:n]
	} else {
		fb.Pix = make([]float32, n)
	}
	fb.Width, fb.Height = w, h
	fb.Clear()
}

// Clear zeroes every pixel.
func (fb *FrameBuffer) Clear() {
	clear(fb.Pix)
}

// Set writes c at (x, y).
func (fb *FrameBuffer) Set(x, y int, c Color) {
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = float32(c.R)
	fb.Pix[i+1] = float32(c.G)
	fb.Pix[i+2] = float32(c.B)
	fb.Pix[i+3] = float32(c.A)
}

// At reads the pixel at (x, y).
func (fb *FrameBuffer) At(x, y int) Color {
	i := (y*fb.Width + x) * 4
	return Color{
		R: float64(fb.Pix[i]),
		G: float64(fb.Pix[i+1]),
		B: float64(fb.Pix[i+2]),
		A: float64(fb.Pix[i+3]),
	}
}
