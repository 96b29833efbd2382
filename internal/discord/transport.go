package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// messenger is what command handlers and the scoreboard pipeline send through
type messenger interface {
	SendText(ctx context.Context, channelID, text string) error
	Typing(ctx context.Context, channelID string) error
	SendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error
}

// channelTransport sends pipeline output to Discord channels
type channelTransport struct {
	session *discordgo.Session
}

func (t *channelTransport) SendText(ctx context.Context, channelID, text string) error {
	_, err := t.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return err
}

func (t *channelTransport) Typing(ctx context.Context, channelID string) error {
	return t.session.ChannelTyping(channelID, discordgo.WithContext(ctx))
}

func (t *channelTransport) SendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error {
	_, err := t.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	return err
}
