package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/scorebot/internal/format"
)

// CleanMentions removes Discord mentions from a message
func CleanMentions(content string, mentions []*discordgo.User) string {
	for _, user := range mentions {
		content = strings.ReplaceAll(content, "<@"+user.ID+">", "")
		content = strings.ReplaceAll(content, "<@!"+user.ID+">", "")
	}
	return strings.TrimSpace(content)
}

// displayName prefers the guild nickname, then the global name
func displayName(user *discordgo.User, member *discordgo.Member) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
}

func inlineField(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

// paginatedEmbeds renders items as one embed per page
func paginatedEmbeds(title string, items []string, perPage int) []*discordgo.MessageEmbed {
	if len(items) == 0 {
		return []*discordgo.MessageEmbed{createEmbed(title, "No items to display.", colorBlue)}
	}
	pages := format.Paginate(items, perPage)
	embeds := make([]*discordgo.MessageEmbed, 0, len(pages))
	for i, page := range pages {
		embeds = append(embeds, createEmbed(
			fmt.Sprintf("%s (Page %d/%d)", title, i+1, len(pages)),
			strings.Join(page, "\n"),
			colorBlue,
		))
	}
	return embeds
}
