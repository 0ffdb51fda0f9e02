package actions

import (
	"context"
	"sync"
)

// Command is one kind of test command.
type Command interface {
	// Name returns the command name used in templates and records.
	Name() string

	// MetaKeys returns every key the command's meta may carry.
	MetaKeys() []string

	// Grammar returns the template grammar, or nil when the command only
	// accepts structured records.
	Grammar() *Grammar

	// Validate checks meta and may coerce values in place (numeric text
	// to numbers, nested command lists to Instances).
	Validate(f *Formatter, meta Meta) error

	// Execute runs the command against x.Page.
	Execute(ctx context.Context, meta Meta, x *Exec) (*Result, error)
}

// Registry maps command names to commands. Lookups are by exact name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	names    []string
}

// RegistryOption customizes the default registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	guard *PathGuard
}

// WithPathGuard restricts capture_screen paths.
func WithPathGuard(g *PathGuard) RegistryOption {
	return func(o *registryOptions) {
		o.guard = g
	}
}

// NewRegistry returns a registry holding the built-in commands.
func NewRegistry(opts ...RegistryOption) *Registry {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := NewEmptyRegistry()
	r.Register(NewGoToCommand())
	r.Register(NewClickOnCommand())
	r.Register(NewInputToCommand())
	r.Register(NewSelectOnCommand())
	r.Register(NewWaitCommand())
	r.Register(NewGroupCommand())
	r.Register(NewCaptureScreenCommand(o.guard))
	return r
}

// NewEmptyRegistry returns a registry with no commands.
func NewEmptyRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd under its name, replacing any command registered with
// the same name. The name list keeps its first registration order.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if _, exists := r.commands[name]; !exists {
		r.names = append(r.names, name)
	}
	r.commands[name] = cmd
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}
