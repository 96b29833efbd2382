package scoreboard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hunterjsb/scorebot/internal/espn"
	"github.com/hunterjsb/scorebot/internal/format"
	"github.com/jonboulle/clockwork"
)

// Game is one renderable scoreboard row
type Game struct {
	Away      string
	AwayScore string
	Home      string
	HomeScore string
	Status    string
	Links     []string
}

// Block renders the fixed-width away/home score block
func (g Game) Block() string {
	return fmt.Sprintf("%6.6s  %3s\n%6.6s  %3s\n        %s", g.Away, g.AwayScore, g.Home, g.HomeScore, g.Status)
}

// Chunk renders the game as one Discord message
func (g Game) Chunk() string {
	return fmt.Sprintf("```%s```\n%s", g.Block(), strings.Join(g.Links, " | "))
}

// Chunks renders the game as one or more messages of at most limit
// characters. The code block always stays in the first message; only the
// links spill over, split between links where possible.
func (g Game) Chunks(limit int) []string {
	chunk := g.Chunk()
	if utf8.RuneCountInString(chunk) <= limit {
		return []string{chunk}
	}

	block := fmt.Sprintf("```%s```", g.Block())
	var chunks []string
	current := block + "\n"
	if utf8.RuneCountInString(current) > limit {
		chunks = append(chunks, format.ChunkString(block, limit)...)
		current = ""
	}

	for _, link := range g.Links {
		sep := " | "
		if current == "" || strings.HasSuffix(current, "\n") {
			sep = ""
		}
		if utf8.RuneCountInString(current+sep+link) <= limit {
			current += sep + link
			continue
		}
		if current != "" {
			chunks = append(chunks, strings.TrimSuffix(current, "\n"))
		}
		current = ""
		if utf8.RuneCountInString(link) > limit {
			parts := format.ChunkString(link, limit)
			chunks = append(chunks, parts[:len(parts)-1]...)
			link = parts[len(parts)-1]
		}
		current = link
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// Games extracts the well-formed games from a scoreboard. Events without a
// competition, with fewer than two competitors or missing a side are skipped.
func Games(board *espn.Scoreboard) []Game {
	if board == nil {
		return nil
	}

	var games []Game
	for _, event := range board.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]
		if len(comp.Competitors) < 2 {
			continue
		}

		var away, home *espn.Competitor
		for i := range comp.Competitors {
			if comp.Competitors[i].HomeAway == "away" {
				away = &comp.Competitors[i]
			} else {
				home = &comp.Competitors[i]
			}
		}
		if away == nil || home == nil {
			continue
		}

		games = append(games, Game{
			Away:      abbreviation(away),
			AwayScore: score(away),
			Home:      abbreviation(home),
			HomeScore: score(home),
			Status:    StatusLabel(comp.Status.Type, event.Date),
			Links:     formatLinks(event.Links),
		})
	}
	return games
}

func abbreviation(c *espn.Competitor) string {
	if c.Team == nil || c.Team.Abbreviation == nil {
		return "???"
	}
	return *c.Team.Abbreviation
}

func score(c *espn.Competitor) string {
	if c.Score == nil {
		return "-"
	}
	return *c.Score
}

// formatLinks renders links as Discord hyperlinks with embeds suppressed
func formatLinks(links []espn.Link) []string {
	var out []string
	for _, link := range links {
		text := link.Text
		if link.ShortText != nil {
			text = *link.ShortText
		}
		if text == "" || link.Href == "" {
			continue
		}
		out = append(out, fmt.Sprintf("[%s](<%s>)", text, link.Href))
	}
	return out
}

// Renderer turns scoreboards into Discord-sized chunks
type Renderer struct {
	clock clockwork.Clock
}

// NewRenderer creates a Renderer that dates headers with clock
func NewRenderer(clock clockwork.Clock) *Renderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Renderer{clock: clock}
}

// Header returns the bold scoreboard title for today in US Eastern time
func (r *Renderer) Header(name string) string {
	today := r.clock.Now().In(Eastern()).Format("Monday, January 02, 2006")
	return fmt.Sprintf("**%s Scoreboard - %s**", name, today)
}

// FailureMessage is sent when a scoreboard could not be fetched
func FailureMessage(name string) string {
	return fmt.Sprintf("Failed to fetch %s scores. Please try again later.", name)
}

// Render produces the chunks for a fetch result. ok is false when the fetch failed.
func (r *Renderer) Render(board *espn.Scoreboard, ok bool, name string) []string {
	if !ok || board == nil {
		return []string{FailureMessage(name)}
	}

	header := r.Header(name)
	if len(board.Events) == 0 {
		return []string{header + "\n\nNo games scheduled today."}
	}

	chunks := []string{header}
	for _, game := range Games(board) {
		chunks = append(chunks, game.Chunks(format.MaxMessageLength)...)
	}
	return chunks
}
