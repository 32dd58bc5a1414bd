package bluealliance

import (
	"context"
	"fmt"
	"net/url"

	sonic "github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	"github.com/cardinalbotics/scouting-backend/internal/domain/frc"
	"github.com/cardinalbotics/scouting-backend/internal/usecase"
)

var _ usecase.BlueAllianceProvider = (*Client)(nil)

func (c *Client) Status(ctx context.Context) (usecase.ExternalStatus, error) {
	var payload statusPayload
	if err := c.Get(ctx, statusPath(), &payload); err != nil {
		return usecase.ExternalStatus{}, err
	}
	if payload.MaxSeason == nil || payload.CurrentSeason == nil {
		return usecase.ExternalStatus{}, fmt.Errorf("%w: status payload is missing max_season or current_season", usecase.ErrUpstreamMalformed)
	}

	return usecase.ExternalStatus{
		MaxSeason:     *payload.MaxSeason,
		CurrentSeason: *payload.CurrentSeason,
	}, nil
}

func (c *Client) EventsBySeason(ctx context.Context, season string) ([]frc.Event, error) {
	var payload []eventSimple
	if err := c.Get(ctx, eventsPath(season), &payload); err != nil {
		return nil, err
	}

	out := make([]frc.Event, 0, len(payload))
	for _, item := range payload {
		out = append(out, frc.Event{
			Code:      item.EventCode,
			Name:      item.Name,
			StartDate: item.StartDate,
			EndDate:   item.EndDate,
			StateProv: item.StateProv,
		})
	}
	return out, nil
}

func (c *Client) EventMatches(ctx context.Context, season, event string) ([]frc.Match, error) {
	var payload []matchSimple
	if err := c.Get(ctx, eventMatchesPath(season, event), &payload); err != nil {
		return nil, err
	}

	out := make([]frc.Match, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) EventTeamKeys(ctx context.Context, season, event string) ([]frc.TeamKey, error) {
	var payload []string
	if err := c.Get(ctx, eventTeamKeysPath(season, event), &payload); err != nil {
		return nil, err
	}

	out := make([]frc.TeamKey, 0, len(payload))
	for _, key := range payload {
		out = append(out, frc.TeamKey(key))
	}
	return out, nil
}

// Match returns a single match. An {"Error": "..."} body on a 2xx response is
// reported as *usecase.EmbeddedError.
func (c *Client) Match(ctx context.Context, season, event, match string) (frc.Match, error) {
	var payload matchPayload
	if err := c.Get(ctx, matchPath(season, event, match), &payload); err != nil {
		return frc.Match{}, err
	}
	if payload.hasError {
		return frc.Match{}, &usecase.EmbeddedError{Message: payload.errorMessage}
	}
	if payload.Alliances == nil {
		return frc.Match{}, fmt.Errorf("%w: match payload has no alliances", usecase.ErrUpstreamMalformed)
	}
	return payload.toDomain(), nil
}

func statusPath() string {
	return "status"
}

// Path builders escape each segment so caller input cannot add path
// components or a query to the upstream URL.

func eventsPath(season string) string {
	return fmt.Sprintf("events/%s/simple", url.PathEscape(season))
}

func eventMatchesPath(season, event string) string {
	return fmt.Sprintf("event/%s/matches/simple", url.PathEscape(season+event))
}

func eventTeamKeysPath(season, event string) string {
	return fmt.Sprintf("event/%s/teams/keys", url.PathEscape(season+event))
}

func matchPath(season, event, match string) string {
	return fmt.Sprintf("match/%s/simple", url.PathEscape(season+event+"_"+match))
}

type statusPayload struct {
	MaxSeason     *int `json:"max_season"`
	CurrentSeason *int `json:"current_season"`
}

type eventSimple struct {
	Key       string `json:"key"`
	EventCode string `json:"event_code"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StateProv string `json:"state_prov"`
}

type matchSimple struct {
	Key       string                   `json:"key"`
	Alliances map[string]matchAlliance `json:"alliances"`
}

// matchPayload is a single match body, which may instead carry an exact
// "Error" key. Struct tags match case-insensitively, so the key is found by path.
type matchPayload struct {
	matchSimple
	hasError     bool
	errorMessage string
}

func (p *matchPayload) UnmarshalJSON(data []byte) error {
	if node, err := sonic.Get(data, "Error"); err == nil {
		p.hasError = true
		if node.TypeSafe() == ast.V_STRING {
			p.errorMessage, _ = node.String()
		} else if raw, err := node.Raw(); err == nil && node.TypeSafe() != ast.V_NULL {
			p.errorMessage = raw
		}
		return nil
	}
	type plain matchSimple
	return sonic.Unmarshal(data, (*plain)(&p.matchSimple))
}

type matchAlliance struct {
	TeamKeys []string `json:"team_keys"`
}

func (m matchSimple) toDomain() frc.Match {
	alliances := make(map[string][]frc.TeamKey, len(m.Alliances))
	for name, alliance := range m.Alliances {
		keys := make([]frc.TeamKey, 0, len(alliance.TeamKeys))
		for _, key := range alliance.TeamKeys {
			keys = append(keys, frc.TeamKey(key))
		}
		alliances[name] = keys
	}
	return frc.Match{Key: frc.MatchKey(m.Key), Alliances: alliances}
}
