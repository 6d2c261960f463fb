package texture

import (
	"image"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Asset names of the two fixed background textures.
const (
	BackgroundName = "milkyway.jpg"
	StarsName      = "star_noise.png"
)

// Handles is a consistent view of the three textures for one frame. A nil
// handle samples as transparent black.
type Handles struct {
	Background *image.NRGBA
	Stars      *image.NRGBA
	Disk       *image.NRGBA
}

// Set owns the background, star and disk textures of a render session.
// Readers take lock-free snapshots; the disk handle is replaced whole on
// selection change, never written into.
type Set struct {
	resolver Resolver
	log      *zap.Logger

	background atomic.Pointer[image.NRGBA]
	stars      atomic.Pointer[image.NRGBA]
	disk       atomic.Pointer[image.NRGBA]

	mu       sync.Mutex // serializes writers with Close
	diskName string
	gen      uint64
	loaded   bool
	closed   bool
	pending  sync.WaitGroup
}

// NewSet creates an empty set. Nothing is loaded until first use.
func NewSet(r Resolver, log *zap.Logger) *Set {
	if log == nil {
		log = zap.NewNop()
	}
	return &Set{resolver: r, log: log}
}

// EnsureBackground loads the panorama and star textures on first call.
func (s *Set) EnsureBackground() {
	s.mu.Lock()
	if s.loaded || s.closed {
		s.mu.Unlock()
		return
	}
	s.loaded = true
	s.mu.Unlock()

	bg := s.resolve(BackgroundName)
	stars := s.resolve(StarsName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.background.Store(bg)
	s.stars.Store(stars)
}

// SelectDisk resolves name and swaps it in as the disk texture. An empty
// name clears the handle (procedural or hidden disk).
func (s *Set) SelectDisk(name string) {
	gen, ok := s.begin(name, false)
	if !ok {
		return
	}
	s.commit(gen, s.resolve(name))
}

// SelectDiskAsync is SelectDisk with decoding off the caller's goroutine.
// The returned channel closes once the swap happened or was discarded
// because a newer selection or Close overtook it.
func (s *Set) SelectDiskAsync(name string) <-chan struct{} {
	done := make(chan struct{})
	gen, ok := s.begin(name, true)
	if !ok {
		close(done)
		return done
	}

	go func() {
		defer s.pending.Done()
		defer close(done)
		s.commit(gen, s.resolve(name))
	}()
	return done
}

// begin records a new selection. Async loads are registered with pending
// under the lock so Close cannot miss them.
func (s *Set) begin(name string, async bool) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false
	}
	if async {
		s.pending.Add(1)
	}
	s.gen++
	s.diskName = name
	return s.gen, true
}

func (s *Set) commit(gen uint64, img *image.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}
	s.disk.Store(img)
}

func (s *Set) resolve(name string) *image.NRGBA {
	if name == "" || s.resolver == nil {
		return nil
	}
	return s.resolver.Resolve(name)
}

// DiskName returns the most recent disk selection.
func (s *Set) DiskName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diskName
}

// Snapshot returns the current handles.
func (s *Set) Snapshot() Handles {
	return Handles{
		Background: s.background.Load(),
		Stars:      s.stars.Load(),
		Disk:       s.disk.Load(),
	}
}

// Close releases every handle. Loads still in flight are discarded when
// they finish; Close waits for them so nothing writes afterwards.
func (s *Set) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.background.Store(nil)
	s.stars.Store(nil)
	s.disk.Store(nil)
	s.mu.Unlock()

	s.pending.Wait()
	if p, ok := s.resolver.(interface{ Purge() }); ok {
		p.Purge()
	}
	s.log.Debug("texture set released")
}

// Closed reports whether Close was called.
func (s *Set) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
