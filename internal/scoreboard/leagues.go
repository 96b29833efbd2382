package scoreboard

import (
	"strings"

	"github.com/hunterjsb/scorebot/internal/pipeline"
)

// League identifies an ESPN scoreboard by its sport and league path segments
type League struct {
	Sport  string
	League string
}

// leagueOptions is the menu shown by the scoreboard command, in display order
var leagueOptions = []pipeline.Option[League]{
	{Token: "1", DisplayName: "NFL", Params: League{Sport: "football", League: "nfl"}},
	{Token: "2", DisplayName: "MLB", Params: League{Sport: "baseball", League: "mlb"}},
	{Token: "3", DisplayName: "NBA", Params: League{Sport: "basketball", League: "nba"}},
	{Token: "4", DisplayName: "NHL", Params: League{Sport: "hockey", League: "nhl"}},
	{Token: "5", DisplayName: "NCAAF", Params: League{Sport: "football", League: "college-football"}},
	{Token: "6", DisplayName: "NCAAB", Params: League{Sport: "basketball", League: "mens-college-basketball"}},
	{Token: "7", DisplayName: "MLS", Params: League{Sport: "soccer", League: "usa.1"}},
	{Token: "8", DisplayName: "EPL", Params: League{Sport: "soccer", League: "eng.1"}},
}

// Leagues returns the scoreboard league menu
func Leagues() *pipeline.Menu[League] {
	menu, err := pipeline.NewMenu(leagueOptions...)
	if err != nil {
		panic("scoreboard: invalid league menu: " + err.Error())
	}
	return menu
}

// FindLeague resolves a league by menu token or display name, ignoring case
func FindLeague(name string) (pipeline.Option[League], bool) {
	for _, opt := range leagueOptions {
		if opt.Token == name || strings.EqualFold(opt.DisplayName, name) {
			return opt, true
		}
	}
	return pipeline.Option[League]{}, false
}
