package cmd

import (
	"sort"
	"sync"
)

// DefaultRegistry is the global registry commands add themselves to from init().
var DefaultRegistry = NewRegistry()

// Registry stores commands by name, one collection per scope. It never
// dispatches; adapters read snapshots of a scope and build what they need.
type Registry struct {
	mu       sync.RWMutex
	commands map[Scope]map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: map[Scope]map[string]Command{
		Public:  {},
		Private: {},
	}}
}

// Register adds a public command. A later registration with the same name
// replaces the earlier one.
func (r *Registry) Register(c Command) {
	r.RegisterScoped(Public, c)
}

// RegisterPrivate adds a guild-restricted command.
func (r *Registry) RegisterPrivate(c Command) {
	r.RegisterScoped(Private, c)
}

// RegisterScoped adds a command under the given scope.
func (r *Registry) RegisterScoped(scope Scope, c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.commands[scope]
	if !ok {
		set = make(map[string]Command)
		r.commands[scope] = set
	}
	set[c.Name()] = c
}

// Get returns the command with the given name in scope, or nil.
func (r *Registry) Get(scope Scope, name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[scope][name]
}

// GetAll returns the commands of a scope, sorted by name.
func (r *Registry) GetAll(scope Scope) []Command {
	r.mu.RLock()
	list := make([]Command, 0, len(r.commands[scope]))
	for _, c := range r.commands[scope] {
		list = append(list, c)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Len returns the number of commands registered in scope.
func (r *Registry) Len(scope Scope) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands[scope])
}
