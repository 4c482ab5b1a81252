package sim

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/simboot/simboot/sim/scenario"
)

// Registry maps className identifiers to factories. Identifiers are matched
// exactly and case-sensitively.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry is filled by the init() functions of implementation
// packages. Production code imports those packages for their side effect.
var DefaultRegistry = NewRegistry()

// Register adds a factory to DefaultRegistry.
func Register(id string, f Factory) {
	DefaultRegistry.Register(id, f)
}

// Register adds a factory under id. Registration happens at init time, so an
// empty id, a nil factory or a duplicate id is a programming error and panics.
func (r *Registry) Register(id string, f Factory) {
	if id == "" {
		panic("sim: Register with empty identifier")
	}
	if f == nil {
		panic(fmt.Sprintf("sim: Register %q with nil factory", id))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("sim: simulation %q already registered", id))
	}
	logrus.Debugf("registered simulation %q", id)
	r.factories[id] = f
}

// Resolve returns the factory registered under id, or a NotFound
// ResolutionError. No factory is invoked.
func (r *Registry) Resolve(id string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	if !ok {
		return nil, &ResolutionError{Kind: NotFound, Identifier: id}
	}
	return f, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, err := r.Resolve(id)
	return err == nil
}

// Names returns the registered identifiers in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for id := range r.factories {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// Construct resolves the scenario's className and calls its factory. A
// factory that returns an error, returns nil, or panics yields a
// ConstructionFailed ResolutionError.
func (r *Registry) Construct(desc *scenario.Descriptor) (h *Handle, err error) {
	id := desc.ClassName()
	f, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			h = nil
			err = &ResolutionError{
				Kind:       ConstructionFailed,
				Identifier: id,
				Cause:      &PanicError{Value: p, Stack: debug.Stack()},
			}
		}
	}()

	s, ferr := f(desc.Root, desc.Source)
	if ferr != nil {
		return nil, &ResolutionError{Kind: ConstructionFailed, Identifier: id, Cause: ferr}
	}
	if s == nil {
		return nil, &ResolutionError{Kind: ConstructionFailed, Identifier: id, Cause: errNilSimulation}
	}
	return &Handle{Simulation: s, Descriptor: desc}, nil
}
