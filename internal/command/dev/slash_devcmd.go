// Package dev holds commands deployed only to the private development guild.
package dev

import (
	"github.com/keshon/command-deploy/internal/command"

	"github.com/bwmarrin/discordgo"
)

type DevCommand struct{}

func (c *DevCommand) Name() string        { return "devcmd" }
func (c *DevCommand) Description() string { return "Developer tools for the bot" }

func (c *DevCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perm := int64(discordgo.PermissionAdministrator)
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perm,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "reload",
				Description: "Redeploy application commands",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show the last command deployment",
			},
		},
	}
}

func init() {
	command.RegisterPrivateCommand(&DevCommand{})
}
