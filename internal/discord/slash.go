package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/scorebot/internal/format"
)

// maxEmbedDescription leaves headroom under Discord's 4096 limit
const maxEmbedDescription = 4000

var slashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "chat",
		Description: "Chat with the LLM bot",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "prompt",
				Description: "Your message to the AI",
				Required:    true,
			},
		},
	},
}

// registerCommands registers the defined slash commands
func (b *Bot) registerCommands() ([]*discordgo.ApplicationCommand, error) {
	registered := make([]*discordgo.ApplicationCommand, len(slashCommands))

	for i, cmd := range slashCommands {
		r, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, b.Config.GuildID, cmd)
		if err != nil {
			return nil, fmt.Errorf("error creating command '%s': %w", cmd.Name, err)
		}
		registered[i] = r
	}

	return registered, nil
}

// interactionHandler handles Discord interaction events
func (b *Bot) interactionHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	switch name := i.ApplicationCommandData().Name; name {
	case "chat":
		b.handleChatInteraction(s, i)
	default:
		b.log.Warn("unknown interaction", "command", name)
	}
}

func (b *Bot) handleChatInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := b.log.With("interaction", "chat")

	// Acknowledge the interaction immediately
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Error("error acknowledging interaction", "error", err)
		return
	}

	var prompt string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "prompt" {
			prompt = opt.StringValue()
		}
	}

	response, err := b.chat.Complete(b.ctx, prompt)
	if err != nil {
		log.Error("error generating response", "error", err)
		reply, ok := providerErrorReply(err, "OpenAI")
		if !ok {
			reply = "Sorry, I couldn't process your request. Please try again later."
		}
		b.sendError(s, i, "AI Error", reply)
		return
	}

	embeds := b.responseEmbeds(response)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embeds[0]},
	}); err != nil {
		log.Error("error editing interaction response", "error", err)
		return
	}
	for _, embed := range embeds[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		}); err != nil {
			log.Error("error sending follow-up", "error", err)
			return
		}
	}
}

// responseEmbeds splits an AI response into embeds, numbering the parts
// when there is more than one.
func (b *Bot) responseEmbeds(response string) []*discordgo.MessageEmbed {
	chunks := format.ChunkString(response, maxEmbedDescription)
	if len(chunks) == 0 {
		chunks = []string{"(empty response)"}
	}

	embeds := make([]*discordgo.MessageEmbed, 0, len(chunks))
	for n, chunk := range chunks {
		title := "🤖 AI Response"
		if len(chunks) > 1 {
			title = fmt.Sprintf("🤖 AI Response (Part %d of %d)", n+1, len(chunks))
		}
		embed := createEmbed(title, chunk, 0x00ff00)

		// Footer only on the last part
		if n == len(chunks)-1 {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: "Powered by OpenAI"}
			embed.Timestamp = b.clock.Now().Format(time.RFC3339)
		}
		embeds = append(embeds, embed)
	}
	return embeds
}

// sendError replaces the deferred response with an error embed
func (b *Bot) sendError(s *discordgo.Session, i *discordgo.InteractionCreate, title, description string) {
	embed := createEmbed("❌ "+title, description, 0xff0000)

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		b.log.Error("error editing error response", "error", err)
	}
}
