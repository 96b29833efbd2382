package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public ESPN site API
const DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// ErrNoData is returned when a response carries no events list at all
var ErrNoData = errors.New("scoreboard response has no events")

// Client fetches scoreboards from the ESPN site API
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client. An empty baseURL uses DefaultBaseURL and a
// nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// buildURL constructs the scoreboard URL for a sport and league
func (c *Client) buildURL(sport, league string) string {
	return fmt.Sprintf("%s/%s/%s/scoreboard", c.baseURL, url.PathEscape(sport), url.PathEscape(league))
}

// Scoreboard fetches today's scoreboard for a sport and league, e.g. ("football", "nfl").
// Any non-200 status is an error, and so is a body without an events list.
func (c *Client) Scoreboard(ctx context.Context, sport, league string) (*Scoreboard, error) {
	var board Scoreboard
	if err := c.makeAPIRequest(ctx, c.buildURL(sport, league), &board); err != nil {
		return nil, err
	}
	// "events": [] decodes to an empty, non-nil slice
	if board.Events == nil {
		return nil, ErrNoData
	}
	return &board, nil
}

// makeAPIRequest handles the HTTP boilerplate for ESPN requests
func (c *Client) makeAPIRequest(ctx context.Context, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
