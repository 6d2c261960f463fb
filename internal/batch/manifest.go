package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index int     `json:"index"`
	Time  float64 `json:"time"`
	Image string  `json:"image"`
}

// Manifest describes a written sequence.
type Manifest struct {
	FPS    float64         `json:"fps"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Frames []ManifestEntry `json:"frames"`
}

// WriteManifest writes manifest.json for the successful results.
func WriteManifest(path string, fps float64, width, height int, results []Result) error {
	m := Manifest{FPS: fps, Width: width, Height: height, Frames: []ManifestEntry{}}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{Index: r.Index, Time: r.Time, Image: r.Image})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
