package core

import (
	"github.com/keshon/command-deploy/internal/command"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "command",
				Description: "Show details for a single command",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "view",
				Description: "How to lay out the list",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "flat", Value: "flat"},
					{Name: "category", Value: "category"},
				},
			},
		},
	}
}

func init() {
	command.RegisterCommand(&HelpCommand{})
}
