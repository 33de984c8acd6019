package library

import (
	"fmt"
	"os"
)

// Library resolves theme definitions by name, searching user themes first
// and the built-ins second, so a user file can shadow a built-in.
type Library struct {
	dir string
}

// New creates a library over a user theme directory. An empty dir serves
// built-ins only.
func New(dir string) *Library {
	return &Library{dir: dir}
}

// List returns user themes followed by the built-ins they do not shadow,
// each group sorted by name.
func (l *Library) List() ([]*Theme, error) {
	user, err := LoadThemesFromDir(l.dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(user))
	for _, t := range user {
		seen[t.Name] = true
	}

	themes := user
	for _, t := range BuiltinThemes() {
		if !seen[t.Name] {
			themes = append(themes, t)
		}
	}
	return themes, nil
}

// Get resolves one theme by name.
func (l *Library) Get(name string) (*Theme, error) {
	themes, err := l.List()
	if err != nil {
		return nil, err
	}
	for _, t := range themes {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// Save stores a theme into the user directory.
func (l *Library) Save(theme *Theme) (string, error) {
	if l.dir == "" {
		return "", fmt.Errorf("save theme %s: no theme directory configured", theme.Name)
	}
	return SaveTheme(l.dir, theme)
}

// Delete removes a user theme's definition file. Built-ins cannot be
// deleted; a user theme shadowing a built-in can, which unshadows it.
func (l *Library) Delete(name string) error {
	user, err := LoadThemesFromDir(l.dir)
	if err != nil {
		return err
	}
	for _, t := range user {
		if t.Name == name {
			if err := os.Remove(t.Source); err != nil {
				return fmt.Errorf("delete theme %s: %w", name, err)
			}
			return nil
		}
	}
	for _, t := range BuiltinThemes() {
		if t.Name == name {
			return fmt.Errorf("%w: %s", ErrThemeBuiltin, name)
		}
	}
	return fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}
