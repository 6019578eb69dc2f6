package core

import (
	"github.com/keshon/command-deploy/internal/command"

	"github.com/bwmarrin/discordgo"
)

// ReportCommand is a message context-menu entry. Context menu names may
// contain spaces and carry no description.
type ReportCommand struct{}

func (c *ReportCommand) Name() string        { return "Report message" }
func (c *ReportCommand) Description() string { return "Flag a message for moderators" }

func (c *ReportCommand) ContextDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: c.Name(),
		Type: discordgo.MessageApplicationCommand,
	}
}

func init() {
	command.RegisterCommand(&ReportCommand{})
}
