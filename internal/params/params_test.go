package params

import (
	"testing"

	"kerr-renderer/internal/quality"
	"kerr-renderer/internal/settings"
)

func TestLoadEmptyStoreIsDefaults(t *testing.T) {
	got := Load(settings.NewMemory(nil))
	if got != Defaults() {
		t.Errorf("Load(empty) = %+v, want %+v", got, Defaults())
	}
}

func TestLoadClampsSpin(t *testing.T) {
	s := settings.NewMemory(nil)
	for _, tt := range []struct {
		in, want float64
	}{
		{1.0, SpinMax},
		{-1.0, SpinMin},
		{5, SpinMax},
		{0.3, 0.3},
	} {
		if err := s.Set(KeySpin, tt.in); err != nil {
			t.Fatal(err)
		}
		if got := Load(s).Spin; got != tt.want {
			t.Errorf("spin %v loaded as %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnknownDiskTextureFallsBack(t *testing.T) {
	s := settings.NewMemory(nil)
	s.Set(KeyDiskTexture, "accretion_disk_plaid.png")
	if got := Load(s).DiskTexture; got != Defaults().DiskTexture {
		t.Errorf("DiskTexture = %q, want default %q", got, Defaults().DiskTexture)
	}
}

func TestBackgroundIntensityTwoLevel(t *testing.T) {
	p := Defaults()
	p.Performance = false

	seq := []struct {
		milkyWay bool
		want     float64
	}{
		{true, BackgroundHigh},
		{false, BackgroundFloor},
		{true, BackgroundHigh},
		{false, BackgroundFloor},
	}
	for i, step := range seq {
		p.MilkyWay = step.milkyWay
		got := p.BackgroundIntensity()
		if got != step.want {
			t.Errorf("step %d: BackgroundIntensity = %v, want %v", i, got, step.want)
		}
		if got == 0 {
			t.Errorf("step %d: background intensity must never be 0", i)
		}
	}

	p.Performance = true
	p.MilkyWay = true
	if got := p.BackgroundIntensity(); got != BackgroundLow {
		t.Errorf("low profile BackgroundIntensity = %v, want %v", got, BackgroundLow)
	}
}

func TestDerivedDiskFlags(t *testing.T) {
	tests := []struct {
		id                          string
		visible, blackbody, thermal bool
		asset                       string
	}{
		{DiskHidden, false, false, false, ""},
		{DiskBlackbody, true, true, false, ""},
		{DiskThermal, true, false, true, DiskThermal},
		{DiskNatural, true, false, false, DiskNatural},
	}
	for _, tt := range tests {
		p := Defaults()
		p.DiskTexture = tt.id
		if p.DiskVisible() != tt.visible || p.Blackbody() != tt.blackbody || p.Thermal() != tt.thermal {
			t.Errorf("%s: visible=%v blackbody=%v thermal=%v", tt.id, p.DiskVisible(), p.Blackbody(), p.Thermal())
		}
		if got := p.DiskTextureName(); got != tt.asset {
			t.Errorf("%s: DiskTextureName = %q, want %q", tt.id, got, tt.asset)
		}
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := settings.NewMemory(nil)
	s.Set(KeyBloomEnabled, false)
	s.Set(KeyBloomIntensity, 0.2)
	s.Set(KeyBloomThreshold, 0.9)
	s.Set(KeyBloomRadius, 1.9)
	s.Set(KeyDiskIntensity, 2.0)
	s.Set(KeyOrbit, true)
	s.Set(KeyPerformance, false)

	if Load(s) == Defaults() {
		t.Fatal("precondition: modified store should differ from defaults")
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	got := Load(s)
	if got != Defaults() {
		t.Errorf("after reset = %+v, want %+v", got, Defaults())
	}
	if !got.BloomEnabled || got.BloomIntensity != 1.5 || got.BloomThreshold != 0.3 || got.BloomRadius != 0.8 {
		t.Errorf("bloom after reset = %v %v %v %v", got.BloomEnabled, got.BloomIntensity, got.BloomThreshold, got.BloomRadius)
	}
	if got.DiskIntensity != 1.0 || got.Orbit {
		t.Errorf("disk intensity %v orbit %v after reset", got.DiskIntensity, got.Orbit)
	}
	if len(s.Keys()) != 0 {
		t.Errorf("persisted keys after reset: %v", s.Keys())
	}
}

func TestQualityFollowsPerformance(t *testing.T) {
	p := Defaults()
	p.Performance = false
	if p.Quality() != quality.High {
		t.Errorf("Quality() = %v, want high", p.Quality())
	}
	p.Performance = true
	if p.Quality() != quality.Low {
		t.Errorf("Quality() = %v, want low", p.Quality())
	}
}
