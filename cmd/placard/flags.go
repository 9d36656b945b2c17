package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/placard/internal/config"
	"github.com/alexisbeaulieu97/placard/internal/layout"
)

func validateLayoutPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("layout file is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve layout path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("layout file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("layout path %s is a directory", abs)
	}

	return nil
}

// loadDocument parses, validates and converts a layout file.
func loadDocument(path string) (*layout.Document, error) {
	if err := validateLayoutPath(path); err != nil {
		return nil, err
	}
	cfg, err := config.ParseConfig(path)
	if err != nil {
		return nil, err
	}
	return config.ToDocument(cfg)
}

// parseCustomWrite parses "key=value" or "position:key=value".
func parseCustomWrite(raw string) (layout.CustomWrite, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return layout.CustomWrite{}, fmt.Errorf("custom state %q: expected [position:]key=value", raw)
	}

	var write layout.CustomWrite
	if pos, key, scoped := strings.Cut(name, ":"); scoped {
		position, err := strconv.Atoi(strings.TrimSpace(pos))
		if err != nil || position < 0 {
			return layout.CustomWrite{}, fmt.Errorf("custom state %q: invalid position %q", raw, pos)
		}
		write.Position = &position
		name = key
	}

	write.Key = strings.TrimSpace(name)
	if write.Key == "" {
		return layout.CustomWrite{}, fmt.Errorf("custom state %q: key is empty", raw)
	}

	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return layout.CustomWrite{}, fmt.Errorf("custom state %q: value must be an integer: %w", raw, err)
	}
	write.Value = v
	return write, nil
}
