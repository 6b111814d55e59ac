package gamemode

import (
	"fmt"

	"github.com/mkarren/ballot/pkg/config"
)

// Registry holds every configured mode in declaration order. Mode names are
// unique; the registry is the only way modes are resolved by name after the
// restart boundary invalidates direct references.
type Registry struct {
	modes  []*GameMode
	byName map[string]*GameMode
}

func NewRegistry(sections []config.Mode) (*Registry, error) {
	registry := &Registry{
		byName: make(map[string]*GameMode),
	}

	for _, section := range sections {
		if section.Name == "" {
			return nil, fmt.Errorf("game mode with empty name")
		}

		if _, ok := registry.byName[section.Name]; ok {
			return nil, fmt.Errorf("duplicate game mode: %s", section.Name)
		}

		mode := Load(section)
		registry.modes = append(registry.modes, mode)
		registry.byName[mode.Name] = mode
	}

	return registry, nil
}

// All returns the configured modes in declaration order. The slice is
// shared; callers must not mutate it.
func (r *Registry) All() []*GameMode {
	return r.modes
}

// Get returns the mode with the given name, or nil.
func (r *Registry) Get(name string) *GameMode {
	return r.byName[name]
}

func (r *Registry) Len() int {
	return len(r.modes)
}
