package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMemoryDefaults(t *testing.T) {
	s := NewMemory(nil)
	if got := s.Bool("bloomEnabled", true); !got {
		t.Errorf("Bool default = %v, want true", got)
	}
	if got := s.Float("bloomIntensity", 1.5); got != 1.5 {
		t.Errorf("Float default = %v, want 1.5", got)
	}
	if got := s.String("diskTexture", "none"); got != "none" {
		t.Errorf("String default = %q, want none", got)
	}
}

func TestSetAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("diskIntensity", 1.7); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("orbitEnabled", true); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.Float("diskIntensity", 1.0); got != 1.7 {
		t.Errorf("diskIntensity = %v, want 1.7", got)
	}
	if got := reopened.Bool("orbitEnabled", false); !got {
		t.Errorf("orbitEnabled = %v, want true", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := Prefix + "diskIntensity"; !strings.Contains(string(data), want) {
		t.Errorf("file %s does not contain namespaced key %q", data, want)
	}
}

func TestMalformedValueFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"blackhole.bloomIntensity": "loud", "blackhole.starsEnabled": 3, "blackhole.diskTexture": false}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Float("bloomIntensity", 1.5); got != 1.5 {
		t.Errorf("Float = %v, want default 1.5", got)
	}
	if got := s.Bool("starsEnabled", true); !got {
		t.Errorf("Bool = %v, want default true", got)
	}
	if got := s.String("diskTexture", "none"); got != "none" {
		t.Errorf("String = %q, want default none", got)
	}
}

func TestMalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open on corrupt file: %v", err)
	}
	if len(s.Keys()) != 0 {
		t.Errorf("Keys() = %v, want none", s.Keys())
	}
}

func TestSubscribe(t *testing.T) {
	s := NewMemory(nil)
	var events []Event
	cancel := s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.Set("glowIntensity", 0.5)
	s.Set("glowIntensity", 0.5) // unchanged, no event
	s.Set("jet", true)
	s.Clear()
	cancel()
	s.Set("glowIntensity", 1.0)

	want := []Event{{Key: "glowIntensity"}, {Key: "jet"}, {Reset: true}}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, events[i], want[i])
		}
	}
}

func TestClearKeepsForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"other.theme": "dark", "blackhole.orbitEnabled": true}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Has("orbitEnabled") {
		t.Error("orbitEnabled survived Clear")
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "other.theme") {
		t.Errorf("foreign key dropped: %s", data)
	}
}

func TestCopyIsDetached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	s.Set("spin", 0.5)

	c := s.Copy()
	if c.Path() != "" {
		t.Errorf("copy path = %q", c.Path())
	}
	if got := c.Float("spin", 0); got != 0.5 {
		t.Errorf("copied spin = %v", got)
	}
	c.Set("spin", 0.1)
	if got := s.Float("spin", 0); got != 0.5 {
		t.Errorf("original changed through copy: %v", got)
	}
}
