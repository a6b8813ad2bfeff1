// Package registry maps animatable property kinds to setter factories.
// Property packages register themselves in init() functions, so scenes can
// name a property ("alpha", "hue") without importing its implementation.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tween/internal/anim"
)

// ErrUnknownProperty is returned by Create for kinds nobody registered.
var ErrUnknownProperty = errors.New("registry: unknown property")

// Property is a setter for one widget attribute.
type Property interface {
	anim.Setter

	// Kind returns the identifier used in scene files (e.g. "x", "hue").
	Kind() string

	// Title returns a short description for listings.
	Title() string
}

// PropertyInfo contains metadata about a registered property.
type PropertyInfo struct {
	Kind  string
	Title string
}

// Factory creates a new Property instance.
type Factory func() Property

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a property factory to the registry.
// Panics if the kind is already registered.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: property %q already registered", kind))
	}

	factories[kind] = f
	titles[kind] = f().Title()
}

// List returns all registered properties, sorted by kind.
func List() []PropertyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PropertyInfo, 0, len(factories))
	for kind := range factories {
		result = append(result, PropertyInfo{Kind: kind, Title: titles[kind]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})
	return result
}

// Create instantiates the property registered under kind.
func Create(kind string) (Property, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownProperty, kind)
	}
	return f(), nil
}

// Exists reports whether kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
