package brand

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the on-disk shape of a brand mapping overlay:
//
//	brands:
//	  itoen: 伊藤園
//	  이토엔: 伊藤園
type overlayFile struct {
	Brands map[string]string `yaml:"brands"`
}

// LoadOverlay reads a YAML overlay file and returns the mapping extended
// with its entries. Overlay keywords override built-in ones.
func (m Mapping) LoadOverlay(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read brand overlay: %w", err)
	}

	var file overlayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Mapping{}, fmt.Errorf("parse brand overlay: %w", err)
	}

	return m.Merge(file.Brands), nil
}
