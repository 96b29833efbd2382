package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/scorebot/internal/metrics"
	"github.com/hunterjsb/scorebot/internal/pipeline"
)

var (
	// ErrGuildOnly is returned when a guild-only command is used in a DM
	ErrGuildOnly = errors.New("command can only be used in a server")
	// ErrNoPermission is returned when the author fails an owner check
	ErrNoPermission = errors.New("missing permission")
)

// MissingArgumentError is returned when a command is invoked without its argument
type MissingArgumentError struct {
	Param string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %q", e.Param)
}

// MissingRoleError is returned when the author lacks a required role
type MissingRoleError struct {
	Role string
}

func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("missing role %q", e.Role)
}

// Command is one entry of the prefix command table
type Command struct {
	Name string
	Help string
	// Arg names the required free-text argument, if any
	Arg            string
	RequiredRole   string
	GuildOnly      bool
	OwnerOnly      bool
	GuildOwnerOnly bool
	Handler        func(c *Context) error
}

// Context is a single command invocation
type Context struct {
	Ctx     context.Context
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Command *Command
	Args    string
}

func (c *Context) ChannelID() string { return c.Message.ChannelID }
func (c *Context) GuildID() string   { return c.Message.GuildID }
func (c *Context) AuthorID() string  { return c.Message.Author.ID }

// access is what the permission checks need to know about an invocation
type access struct {
	InGuild      bool
	IsBotOwner   bool
	IsGuildOwner func() (bool, error)
	Roles        func() ([]string, error)
	Args         string
}

// checkAccess runs the command's checks in order: guild, owner, guild
// owner, role, argument.
func checkAccess(cmd *Command, a access) error {
	if (cmd.GuildOnly || cmd.GuildOwnerOnly || cmd.RequiredRole != "") && !a.InGuild {
		return ErrGuildOnly
	}
	if cmd.OwnerOnly && !a.IsBotOwner {
		return ErrNoPermission
	}
	if cmd.GuildOwnerOnly {
		ok, err := a.IsGuildOwner()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoPermission
		}
	}
	if cmd.RequiredRole != "" {
		roles, err := a.Roles()
		if err != nil {
			return err
		}
		if !slices.Contains(roles, cmd.RequiredRole) {
			return &MissingRoleError{Role: cmd.RequiredRole}
		}
	}
	if cmd.Arg != "" && a.Args == "" {
		return &MissingArgumentError{Param: cmd.Arg}
	}
	return nil
}

// errorMessage maps a command error to the reply shown in the channel. The
// second return value is false for errors nobody anticipated.
func errorMessage(err error) (string, bool) {
	var missingArg *MissingArgumentError
	var missingRole *MissingRoleError

	switch {
	case errors.As(err, &missingArg):
		return fmt.Sprintf("Missing required argument: `%s`", missingArg.Param), true
	case errors.As(err, &missingRole):
		return fmt.Sprintf("You need the **%s** role to use this command.", missingRole.Role), true
	case errors.Is(err, ErrNoPermission):
		return "You don't have permission to use this command.", true
	case errors.Is(err, ErrGuildOnly):
		return "This command can only be used in a server.", true
	default:
		return "An unexpected error occurred. Please try again later.", false
	}
}

// parseCommand splits "!name rest of line" into its name and argument text
func parseCommand(prefix, content string) (name, args string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(content, prefix))
	if rest == "" {
		return "", "", false
	}
	i := strings.IndexFunc(rest, unicode.IsSpace)
	if i < 0 {
		return rest, "", true
	}
	return rest[:i], strings.TrimSpace(rest[i:]), true
}

// lookup finds a command by exact name
func (b *Bot) lookup(name string) *Command {
	for _, cmd := range b.commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if b.waiter.Dispatch(pipeline.Message{
		AuthorID:  m.Author.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}) {
		return
	}

	name, args, ok := parseCommand(b.Config.CommandPrefix, m.Content)
	if !ok {
		return
	}
	cmd := b.lookup(name)
	if cmd == nil {
		return
	}

	c := &Context{
		Ctx:     b.ctx,
		Session: s,
		Message: m,
		Command: cmd,
		Args:    args,
	}
	b.execute(c)
}

func (b *Bot) execute(c *Context) {
	log := b.log.With("command", c.Command.Name, "author", c.AuthorID(), "channel", c.ChannelID())

	err := checkAccess(c.Command, b.accessFor(c))
	if err == nil {
		err = c.Command.Handler(c)
		if err == nil {
			metrics.CommandsTotal.WithLabelValues(c.Command.Name, "ok").Inc()
			return
		}
	}

	msg, expected := errorMessage(err)
	if expected {
		metrics.CommandsTotal.WithLabelValues(c.Command.Name, "denied").Inc()
		log.Debug("command rejected", "error", err)
	} else {
		metrics.CommandsTotal.WithLabelValues(c.Command.Name, "error").Inc()
		log.Error("unexpected error in command", "error", err)
	}
	if sendErr := b.transport.SendText(c.Ctx, c.ChannelID(), msg); sendErr != nil {
		log.Error("error sending error reply", "error", sendErr)
	}
}

func (b *Bot) accessFor(c *Context) access {
	return access{
		InGuild:    c.GuildID() != "",
		IsBotOwner: b.ownerID != "" && c.AuthorID() == b.ownerID,
		IsGuildOwner: func() (bool, error) {
			guild, err := b.guild(c.GuildID())
			if err != nil {
				return false, err
			}
			return guild.OwnerID == c.AuthorID(), nil
		},
		Roles: func() ([]string, error) {
			if c.Message.Member == nil {
				return nil, nil
			}
			guild, err := b.guild(c.GuildID())
			if err != nil {
				return nil, err
			}
			return roleNames(guild.Roles, c.Message.Member.Roles), nil
		},
		Args: c.Args,
	}
}

// guild returns the cached guild, falling back to the REST API
func (b *Bot) guild(guildID string) (*discordgo.Guild, error) {
	if g, err := b.Session.State.Guild(guildID); err == nil {
		return g, nil
	}
	g, err := b.Session.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error fetching guild: %w", err)
	}
	return g, nil
}

// roleNames resolves role IDs against the guild's roles
func roleNames(roles []*discordgo.Role, ids []string) []string {
	var names []string
	for _, r := range roles {
		if slices.Contains(ids, r.ID) {
			names = append(names, r.Name)
		}
	}
	return names
}
