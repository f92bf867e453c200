package effects

import (
	"fmt"
	"sort"
)

// constructors maps effect names to their factories.
var constructors = map[string]func(Options) (Effect, error){
	"beams":     NewBeams,
	"expand":    NewExpand,
	"slide":     NewSlide,
	"rain":      NewRain,
	"decrypt":   NewDecrypt,
	"labyrinth": NewLabyrinth,
}

// Names lists the registered effect names, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named effect.
func New(name string, opts Options) (Effect, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect %q", name)
	}
	return ctor(opts)
}
