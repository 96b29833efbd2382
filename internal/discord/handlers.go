package discord

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/scorebot/internal/format"
	"github.com/hunterjsb/scorebot/internal/llm"
)

const (
	helicopterWebhook  = "HelicopterBot"
	helicopterPlay     = "m!play https://music.apple.com/us/playlist/chopper/pl.u-9N9LXjLIxqEek06"
	helicopterShuffle  = "m!shuffle"
	helpPageSize       = 10
	colorBlue          = 0x3498db
	colorGreen         = 0x2ecc71
	manageWebhooksHint = "I need the **Manage Webhooks** permission in this channel."
)

// commandTable lists the prefix commands in the order shown by help
func (b *Bot) commandTable() []*Command {
	return []*Command{
		{Name: "ping", Help: "Check the bot's latency.", Handler: b.handlePing},
		{Name: "info", Help: "Display information about the bot.", Handler: b.handleInfo},
		{Name: "hello", Help: "Say hello (owner only).", GuildOnly: true, OwnerOnly: true, Handler: b.handleHello},
		{Name: "helicopter", Help: "Play the chopper playlist and shuffle it.", GuildOnly: true, OwnerOnly: true, Handler: b.handleHelicopter},
		{Name: "serverinfo", Help: "Display information about the current server.", GuildOnly: true, Handler: b.handleServerInfo},
		{Name: "scoreboard", Help: "Show today's scores for a league.", RequiredRole: b.Config.Scores.Role, Handler: b.handleScoreboard},
		{Name: "claude", Help: "Ask Claude a question (server owner only).", Arg: "prompt", GuildOnly: true, GuildOwnerOnly: true, Handler: b.handleClaude},
		{Name: "chat", Help: "Chat with the AI.", Arg: "prompt", Handler: b.handleChat},
		{Name: "help", Help: "List the available commands.", Handler: b.handleHelp},
	}
}

func (b *Bot) handlePing(c *Context) error {
	latency := c.Session.HeartbeatLatency().Milliseconds()
	return b.transport.SendText(c.Ctx, c.ChannelID(), fmt.Sprintf("Pong! Latency: %dms", latency))
}

func (b *Bot) handleInfo(c *Context) error {
	embed := createEmbed("Bot Information", "", colorBlue)

	if user := c.Session.State.User; user != nil {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("")}
		embed.Fields = append(embed.Fields, inlineField("Name", user.Username))
	}
	embed.Fields = append(embed.Fields,
		inlineField("Servers", strconv.Itoa(len(c.Session.State.Guilds))),
		inlineField("Latency", fmt.Sprintf("%dms", c.Session.HeartbeatLatency().Milliseconds())),
		inlineField("Uptime", format.Duration(b.clock.Since(b.started))),
	)

	return b.transport.SendEmbed(c.Ctx, c.ChannelID(), embed)
}

func (b *Bot) handleHello(c *Context) error {
	return b.transport.SendText(c.Ctx, c.ChannelID(), fmt.Sprintf("Hello, %s!", c.Message.Author.Username))
}

func (b *Bot) handleHelicopter(c *Context) error {
	webhook, err := b.findOrCreateWebhook(c)
	if err != nil {
		if isForbidden(err) {
			return b.transport.SendText(c.Ctx, c.ChannelID(), manageWebhooksHint)
		}
		return err
	}

	params := &discordgo.WebhookParams{
		Username:  displayName(c.Message.Author, c.Message.Member),
		AvatarURL: c.Message.Author.AvatarURL(""),
	}
	for i, content := range []string{helicopterPlay, helicopterShuffle} {
		if i > 0 {
			select {
			case <-b.clock.After(time.Second):
			case <-c.Ctx.Done():
				return c.Ctx.Err()
			}
		}
		params.Content = content
		if _, err := c.Session.WebhookExecute(webhook.ID, webhook.Token, false, params, discordgo.WithContext(c.Ctx)); err != nil {
			if isForbidden(err) {
				return b.transport.SendText(c.Ctx, c.ChannelID(), manageWebhooksHint)
			}
			return fmt.Errorf("error executing webhook: %w", err)
		}
	}
	return nil
}

func (b *Bot) findOrCreateWebhook(c *Context) (*discordgo.Webhook, error) {
	webhooks, err := c.Session.ChannelWebhooks(c.ChannelID(), discordgo.WithContext(c.Ctx))
	if err != nil {
		return nil, fmt.Errorf("error listing webhooks: %w", err)
	}
	for _, w := range webhooks {
		if w.Name == helicopterWebhook {
			return w, nil
		}
	}

	w, err := c.Session.WebhookCreate(c.ChannelID(), helicopterWebhook, "", discordgo.WithContext(c.Ctx))
	if err != nil {
		return nil, fmt.Errorf("error creating webhook: %w", err)
	}
	return w, nil
}

func (b *Bot) handleServerInfo(c *Context) error {
	guild, err := b.guild(c.GuildID())
	if err != nil {
		return err
	}

	owner := guild.OwnerID
	if u, err := c.Session.User(guild.OwnerID, discordgo.WithContext(c.Ctx)); err == nil {
		owner = u.Username
	}

	created := "unknown"
	if ts, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		created = ts.UTC().Format("2006-01-02")
	}

	embed := createEmbed(guild.Name, "", colorGreen)
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("")}
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		inlineField("Owner", owner),
		inlineField("Members", strconv.Itoa(guild.MemberCount)),
		inlineField("Channels", strconv.Itoa(len(guild.Channels))),
		inlineField("Roles", strconv.Itoa(len(guild.Roles))),
		inlineField("Created", created),
	}
	return b.transport.SendEmbed(c.Ctx, c.ChannelID(), embed)
}

func (b *Bot) handleScoreboard(c *Context) error {
	b.scoreboard.Run(c.Ctx, c.AuthorID(), c.ChannelID())
	return nil
}

func (b *Bot) handleClaude(c *Context) error {
	b.typing(c)

	response, err := b.claude.Complete(c.Ctx, c.Args)
	if err != nil {
		reply, ok := providerErrorReply(err, "Anthropic")
		if !ok {
			return fmt.Errorf("claude completion: %w", err)
		}
		return b.transport.SendText(c.Ctx, c.ChannelID(), reply)
	}
	return b.transport.SendText(c.Ctx, c.ChannelID(), format.Truncate(response, format.MaxMessageLength))
}

func (b *Bot) handleChat(c *Context) error {
	b.typing(c)

	prompt := CleanMentions(c.Args, c.Message.Mentions)
	response, err := b.chat.Complete(c.Ctx, prompt)
	if err != nil {
		reply, ok := providerErrorReply(err, "OpenAI")
		if !ok {
			return fmt.Errorf("chat completion: %w", err)
		}
		return b.transport.SendText(c.Ctx, c.ChannelID(), reply)
	}
	for _, chunk := range format.ChunkString(response, format.MaxMessageLength) {
		if err := b.transport.SendText(c.Ctx, c.ChannelID(), chunk); err != nil {
			return err
		}
	}
	return nil
}

// typing shows the typing indicator; failures only cost the indicator
func (b *Bot) typing(c *Context) {
	if err := b.transport.Typing(c.Ctx, c.ChannelID()); err != nil {
		b.log.Debug("failed to send typing indicator", "channel", c.ChannelID(), "error", err)
	}
}

func (b *Bot) handleHelp(c *Context) error {
	var items []string
	for _, cmd := range b.commands {
		items = append(items, fmt.Sprintf("`%s%s` - %s", b.Config.CommandPrefix, cmd.Name, cmd.Help))
	}
	for _, embed := range paginatedEmbeds("Commands", items, helpPageSize) {
		if err := b.transport.SendEmbed(c.Ctx, c.ChannelID(), embed); err != nil {
			return err
		}
	}
	return nil
}

// providerErrorReply maps an LLM failure to the reply shown in the channel.
// It reports false for errors that should reach the generic handler.
func providerErrorReply(err error, provider string) (string, bool) {
	var apiErr *llm.APIError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return fmt.Sprintf("%s API key is not configured.", provider), true
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API error: %s", apiErr.Message), true
	default:
		return "", false
	}
}

func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
}
