package command

import (
	"github.com/keshon/command-deploy/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// SlashProvider is implemented by commands invoked with /name.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// ContextMenuProvider is implemented by commands shown in a message or user
// context menu.
type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}

// RegisterCommand adds a public command to the default registry.
func RegisterCommand(c cmd.Command) {
	cmd.DefaultRegistry.Register(c)
}

// RegisterPrivateCommand adds a command visible only in the private guild.
func RegisterPrivateCommand(c cmd.Command) {
	cmd.DefaultRegistry.RegisterPrivate(c)
}

// Definition extracts the Discord definition a command provides, slash first,
// then context menu. A zero Type is filled with the natural default for the
// provider. Returns nil when the command provides neither.
func Definition(c cmd.Command) *discordgo.ApplicationCommand {
	if slash, ok := c.(SlashProvider); ok {
		if def := slash.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	}
	if menu, ok := c.(ContextMenuProvider); ok {
		if def := menu.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.MessageApplicationCommand
			}
			return def
		}
	}
	return nil
}
