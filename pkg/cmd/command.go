// Package cmd provides a transport-agnostic command core: a command is something
// with a name and a description, registered under a visibility scope. How its
// definition is shaped for a platform (Discord slash, context menu) is left to
// adapters that type-assert the registered value.
package cmd

// Command is the universal contract. Platform definitions, options and
// permissions stay in adapters.
type Command interface {
	Name() string
	Description() string
}

// Scope says where a command is visible once deployed.
type Scope int

const (
	// Public commands are visible in every installation of the application.
	Public Scope = iota
	// Private commands are visible only inside the configured guild.
	Private
)

func (s Scope) String() string {
	switch s {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}
