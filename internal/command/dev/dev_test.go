package dev

import (
	"testing"

	"github.com/keshon/command-deploy/internal/command"
	"github.com/keshon/command-deploy/pkg/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevCommandIsPrivate(t *testing.T) {
	require.NotNil(t, cmd.DefaultRegistry.Get(cmd.Private, "devcmd"))
	assert.Nil(t, cmd.DefaultRegistry.Get(cmd.Public, "devcmd"))
}

func TestDevCommandRequiresAdministrator(t *testing.T) {
	def := command.Definition(&DevCommand{})
	require.NotNil(t, def)
	require.NotNil(t, def.DefaultMemberPermissions)
	assert.Len(t, def.Options, 2)
}
