package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTheme reads a single theme definition from disk.
func LoadTheme(path string) (*Theme, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("theme path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}

	theme, err := parseTheme(data)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	theme.Source = path
	return theme, nil
}

// LoadThemesFromDir loads all theme definitions from a directory. A missing
// directory is an empty collection, not an error.
func LoadThemesFromDir(dir string) ([]*Theme, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Theme{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Theme{}, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	themes := make([]*Theme, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		theme, err := LoadTheme(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}

	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})

	return themes, nil
}

// SaveTheme writes a theme definition into the directory, named after the
// theme itself.
func SaveTheme(dir string, theme *Theme) (string, error) {
	if err := theme.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create themes dir %s: %w", dir, err)
	}

	data, err := yaml.Marshal(theme)
	if err != nil {
		return "", fmt.Errorf("encode theme %s: %w", theme.Name, err)
	}

	name := strings.ReplaceAll(strings.ToLower(theme.Name), " ", "-")
	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write theme %s: %w", path, err)
	}
	return path, nil
}

func parseTheme(data []byte) (*Theme, error) {
	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, err
	}

	theme.Name = strings.TrimSpace(theme.Name)
	if err := theme.Validate(); err != nil {
		return nil, err
	}

	return &theme, nil
}
