package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cardinalbotics/scouting-backend/internal/usecase"
)

type seasonParams struct {
	Season string `validate:"required,number"`
}

type eventParams struct {
	Season string `validate:"required,number"`
	Event  string `validate:"required,alphanum,max=16"`
}

type matchParams struct {
	Season string `validate:"required,number"`
	Event  string `validate:"required,alphanum,max=16"`
	Match  string `validate:"required,max=32,alphanum|eq=*"`
}

func (h *Handler) BlueAllianceIndex(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BlueAllianceIndex")
	defer span.End()

	index, err := h.blueAllianceService.Index(ctx)
	if err != nil {
		h.fail(ctx, w, "blue alliance index", err)
		return
	}

	writeSuccess(ctx, w, index)
}

func (h *Handler) BlueAllianceSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BlueAllianceSeason")
	defer span.End()

	params := seasonParams{Season: r.PathValue("season")}
	season, err := h.season(params.Season, params)
	if err != nil {
		h.fail(ctx, w, "blue alliance season", err)
		return
	}
	annotateRoute(ctx, "season", season)

	ignoreDate := strings.EqualFold(r.URL.Query().Get("ignoreDate"), "true")
	events, err := h.blueAllianceService.Season(ctx, season, ignoreDate)
	if err != nil {
		h.fail(ctx, w, "blue alliance season", err)
		return
	}

	writeSuccess(ctx, w, events)
}

func (h *Handler) BlueAllianceEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BlueAllianceEvent")
	defer span.End()

	params := eventParams{Season: r.PathValue("season"), Event: r.PathValue("event")}
	season, err := h.season(params.Season, params)
	if err != nil {
		h.fail(ctx, w, "blue alliance event", err)
		return
	}
	annotateRoute(ctx, "season", season, "event", params.Event)

	matches, err := h.blueAllianceService.Event(ctx, season, params.Event)
	if err != nil {
		h.fail(ctx, w, "blue alliance event", err)
		return
	}

	writeSuccess(ctx, w, matches)
}

func (h *Handler) BlueAllianceMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BlueAllianceMatch")
	defer span.End()

	params := matchParams{
		Season: r.PathValue("season"),
		Event:  r.PathValue("event"),
		Match:  r.PathValue("match"),
	}
	season, err := h.season(params.Season, params)
	if err != nil {
		h.fail(ctx, w, "blue alliance match", err)
		return
	}
	annotateRoute(ctx, "season", season, "event", params.Event, "match", params.Match)

	if params.Match != usecase.MatchWildcard {
		teams, err := h.blueAllianceService.Match(ctx, season, params.Event, params.Match)
		if err != nil {
			h.fail(ctx, w, "blue alliance match", err)
			return
		}
		writeSuccess(ctx, w, teams)
		return
	}

	if r.URL.Query().Get("onlyUnfilled") == "true" {
		unfilled, err := h.blueAllianceService.UnfilledTeams(ctx, season, params.Event)
		if err != nil {
			h.fail(ctx, w, "blue alliance unfilled teams", err)
			return
		}
		writeSuccess(ctx, w, unfilled)
		return
	}

	teams, err := h.blueAllianceService.EventTeams(ctx, season, params.Event)
	if err != nil {
		h.fail(ctx, w, "blue alliance event teams", err)
		return
	}
	writeSuccess(ctx, w, teams)
}

// season validates params and returns the season in canonical integer form.
func (h *Handler) season(raw string, params any) (string, error) {
	if err := h.validateParams(params); err != nil {
		return "", err
	}
	season, err := usecase.ParseSeason(raw)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(season), nil
}
