// Package feed reads crawler output files and the downloaded image
// directory that accompanies them.
package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Item is one product record as emitted by the crawler.
type Item struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Maker      string `json:"maker"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	ProductURL string `json:"product_url"`
	ImageURL   string `json:"image_url"`
	Page       int    `json:"page"`
	SourceURL  string `json:"source_url"`
}

// Load reads a JSON feed file containing an array of items.
func Load(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return items, nil
}

// ImageIndex scans dir for product images named "<id>_<suffix>.jpg" or
// ".png" and returns a map from product id to file path. When several
// files share an id the lexicographically first one wins.
func ImageIndex(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	index := make(map[string]string)
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".jpg" && ext != ".png" {
			continue
		}
		id, _, found := strings.Cut(name, "_")
		if !found || id == "" {
			continue
		}
		if _, exists := index[id]; !exists {
			index[id] = filepath.Join(dir, name)
		}
	}
	return index, nil
}

// HashFile returns the hex-encoded SHA-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash image: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
