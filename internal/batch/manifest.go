package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one scene in the output manifest.
type ManifestEntry struct {
	Name   string `json:"name"`
	Scene  string `json:"scene"`
	Image  string `json:"image,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing every result.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:   r.Name,
			Scene:  r.Scene,
			Image:  r.Image,
			Width:  r.Width,
			Height: r.Height,
			Error:  r.Error,
		}
		if !r.Success {
			entries[i].Image = ""
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
