package logging

import "testing"

func TestNew(t *testing.T) {
	for _, debug := range []bool{false, true} {
		log, err := New(debug)
		if err != nil {
			t.Fatalf("New(%v): %v", debug, err)
		}
		if got := log.Core().Enabled(-1); got != debug {
			t.Errorf("New(%v): debug enabled = %v", debug, got)
		}
	}
}
