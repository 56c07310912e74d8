package keymap

import (
	"sort"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/key"
)

// Keymap holds the key bindings of the line editor.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings. Later bindings for the same
	// key replace earlier ones.
	Bindings []Binding

	// Source indicates where this keymap was defined.
	// Examples: "default", "user"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Rebind moves action to keys: every other binding of action is dropped
// and keys is bound to it, keeping the old binding's description.
func (k *Keymap) Rebind(keys, action string) *Keymap {
	nb := NewBinding(keys, action)
	kept := k.Bindings[:0:0]
	for _, b := range k.Bindings {
		if b.Action == action {
			nb.Description = b.Description
			nb.Category = b.Category
			continue
		}
		kept = append(kept, b)
	}
	k.Bindings = append(kept, nb)
	return k
}

// Clone returns a deep copy of k.
func (k *Keymap) Clone() *Keymap {
	c := *k
	c.Bindings = append([]Binding(nil), k.Bindings...)
	return &c
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// Parse resolves the bindings into a lookup table.
func (k *Keymap) Parse() (*Resolved, error) {
	r := &Resolved{
		name:    k.Name,
		byEvent: make(map[key.Event]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		if b.Action == "" {
			return nil, errors.Newf("keymap %s: binding %d (%s): empty action", k.Name, i, b.Keys)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, errors.Wrapf(err, "keymap %s: binding %d", k.Name, i)
		}
		r.byEvent[ev.Normalize()] = b
	}
	return r, nil
}

// Resolved is a parsed keymap.
type Resolved struct {
	name    string
	byEvent map[key.Event]Binding
}

// Lookup returns the binding for ev.
func (r *Resolved) Lookup(ev key.Event) (Binding, bool) {
	b, ok := r.byEvent[ev.Normalize()]
	return b, ok
}

// KeysFor returns the key specs bound to action, sorted.
func (r *Resolved) KeysFor(action string) []string {
	var keys []string
	for _, b := range r.byEvent {
		if b.Action == action {
			keys = append(keys, b.Keys)
		}
	}
	sort.Strings(keys)
	return keys
}

// Bindings returns every effective binding ordered by category then keys.
func (r *Resolved) Bindings() []Binding {
	out := make([]Binding, 0, len(r.byEvent))
	for _, b := range r.byEvent {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}
