package texture

import (
	"image"
	"sync"

	"go.uber.org/zap"
)

// Fallback resolves through Primary and, when it yields nothing, through the
// procedural generator registered for the same stem. Generated images are
// built once and kept.
type Fallback struct {
	Primary Resolver
	Log     *zap.Logger

	mu        sync.Mutex
	generated map[string]*image.NRGBA
}

// NewFallback wraps primary, which may be nil.
func NewFallback(primary Resolver, log *zap.Logger) *Fallback {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fallback{Primary: primary, Log: log, generated: make(map[string]*image.NRGBA)}
}

func (f *Fallback) Resolve(texName string) *image.NRGBA {
	if f.Primary != nil {
		if img := f.Primary.Resolve(texName); img != nil {
			return img
		}
	}

	stem := stemOf(texName)
	f.mu.Lock()
	defer f.mu.Unlock()
	if img, ok := f.generated[stem]; ok {
		return img
	}
	gen := proceduralFor(stem)
	if gen == nil {
		f.generated[stem] = nil
		return nil
	}
	img := gen()
	f.generated[stem] = img
	f.Log.Info("using procedural texture", zap.String("name", texName))
	return img
}

// Purge drops generated images and purges the primary when it supports it.
func (f *Fallback) Purge() {
	f.mu.Lock()
	f.generated = make(map[string]*image.NRGBA)
	f.mu.Unlock()
	if p, ok := f.Primary.(interface{ Purge() }); ok {
		p.Purge()
	}
}

func proceduralFor(stem string) Generator {
	for name, gen := range Procedural {
		if stemOf(name) == stem {
			return gen
		}
	}
	return nil
}
