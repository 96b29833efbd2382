package espn

// Scoreboard is the subset of the ESPN scoreboard payload the bot reads
type Scoreboard struct {
	Events []Event `json:"events"`
}

// Event is one game on the scoreboard
type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Date         *string       `json:"date"`
	Competitions []Competition `json:"competitions"`
	Links        []Link        `json:"links"`
}

type Competition struct {
	Competitors []Competitor `json:"competitors"`
	Status      Status       `json:"status"`
}

type Competitor struct {
	HomeAway string  `json:"homeAway"`
	Score    *string `json:"score"`
	Team     *Team   `json:"team"`
}

type Team struct {
	Abbreviation *string `json:"abbreviation"`
	DisplayName  string  `json:"displayName"`
}

type Status struct {
	Type StatusType `json:"type"`
}

// StatusType carries the game lifecycle state: "pre", "in" or "post"
type StatusType struct {
	State       string `json:"state"`
	ShortDetail string `json:"shortDetail"`
	Completed   bool   `json:"completed"`
}

type Link struct {
	Text      string  `json:"text"`
	ShortText *string `json:"shortText"`
	Href      string  `json:"href"`
}
