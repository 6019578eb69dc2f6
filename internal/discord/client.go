package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/keshon/command-deploy/pkg/ratelimit"

	"github.com/bwmarrin/discordgo"
)

// Client replaces application command sets over the Discord REST API.
// The session is never opened: no gateway connection is made.
type Client struct {
	dg      *discordgo.Session
	limiter *ratelimit.AdaptiveLimiter

	globalEndpoint func(appID string) string
	guildEndpoint  func(appID, guildID string) string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout for every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.dg.Client = &http.Client{Timeout: d}
		}
	}
}

// WithHTTPClient replaces the HTTP client used by the session.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.dg.Client = hc }
}

// WithLimiter paces requests with lim.
func WithLimiter(lim *ratelimit.AdaptiveLimiter) Option {
	return func(c *Client) { c.limiter = lim }
}

// WithBaseURL points the command endpoints at base instead of Discord's API
// root, e.g. an httptest server.
func WithBaseURL(base string) Option {
	base = strings.TrimRight(base, "/")
	return func(c *Client) {
		c.globalEndpoint = func(appID string) string {
			return base + "/applications/" + appID + "/commands"
		}
		c.guildEndpoint = func(appID, guildID string) string {
			return base + "/applications/" + appID + "/guilds/" + guildID + "/commands"
		}
	}
}

// NewClient creates a REST-only discordgo session authenticated with the bot
// token. discordgo's own retries are switched off: a failed call fails once.
func NewClient(token string, opts ...Option) (*Client, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.ShouldRetryOnRateLimit = false
	dg.MaxRestRetries = 0

	c := &Client{
		dg:             dg,
		globalEndpoint: discordgo.EndpointApplicationGlobalCommands,
		guildEndpoint:  discordgo.EndpointApplicationGuildCommands,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ReplaceGuildCommands overwrites every command registered in guildID.
func (c *Client) ReplaceGuildCommands(ctx context.Context, appID, guildID string, defs []json.RawMessage) error {
	return c.put(ctx, c.guildEndpoint(appID, guildID), defs)
}

// ReplaceGlobalCommands overwrites every global command of the application.
func (c *Client) ReplaceGlobalCommands(ctx context.Context, appID string, defs []json.RawMessage) error {
	return c.put(ctx, c.globalEndpoint(appID), defs)
}

func (c *Client) put(ctx context.Context, endpoint string, defs []json.RawMessage) error {
	if defs == nil {
		defs = []json.RawMessage{}
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	_, err := c.dg.RequestWithBucketID(http.MethodPut, endpoint, defs, endpoint, discordgo.WithContext(ctx))
	err = convertError(err)

	if c.limiter != nil {
		c.limiter.Observe(err)
	}
	return err
}
