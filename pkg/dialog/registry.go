package dialog

import "fmt"

// Registry holds the set of dialogs a bot can run, keyed by name.
// Registration happens at construction time; lookups are read-only after
// that, so no locking is needed.
type Registry struct {
	dialogs map[string]*Waterfall
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialogs: make(map[string]*Waterfall)}
}

// Register adds a dialog. Registering an empty name or the same name twice
// is a programmer error.
func (r *Registry) Register(w *Waterfall) error {
	if w == nil || w.Name() == "" {
		return fmt.Errorf("registry: dialog name cannot be empty")
	}
	if _, exists := r.dialogs[w.Name()]; exists {
		return fmt.Errorf("registry: dialog %q already registered", w.Name())
	}
	r.dialogs[w.Name()] = w
	return nil
}

// Lookup resolves a dialog by name.
func (r *Registry) Lookup(name string) (*Waterfall, bool) {
	w, ok := r.dialogs[name]
	return w, ok
}

// Names returns the registered dialog names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialogs))
	for name := range r.dialogs {
		names = append(names, name)
	}
	return names
}
