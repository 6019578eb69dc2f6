package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct{ name string }

func (s stubCommand) Name() string        { return s.name }
func (s stubCommand) Description() string { return s.name + " command" }

func TestRegistryKeepsScopesApart(t *testing.T) {
	r := NewRegistry()
	r.Register(stubCommand{"ping"})
	r.RegisterPrivate(stubCommand{"devcmd"})

	require.Equal(t, 1, r.Len(Public))
	require.Equal(t, 1, r.Len(Private))
	assert.NotNil(t, r.Get(Public, "ping"))
	assert.Nil(t, r.Get(Public, "devcmd"))
	assert.NotNil(t, r.Get(Private, "devcmd"))
}

func TestRegistryGetAllSortedByName(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"roll", "about", "ping"} {
		r.Register(stubCommand{n})
	}

	var names []string
	for _, c := range r.GetAll(Public) {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"about", "ping", "roll"}, names)
	assert.Empty(t, r.GetAll(Private))
}

func TestRegistryReplacesSameName(t *testing.T) {
	r := NewRegistry()
	r.Register(stubCommand{"ping"})
	r.Register(stubCommand{"ping"})

	assert.Equal(t, 1, r.Len(Public))
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "private", Private.String())
	assert.Equal(t, "unknown", Scope(7).String())
}
