package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cardinalbotics/scouting-backend/internal/domain/frc"
	"github.com/cardinalbotics/scouting-backend/internal/domain/pitscouting"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/platform/metrics"
	"github.com/sourcegraph/conc"
)

// MatchWildcard selects every team at an event instead of a single match.
const MatchWildcard = "*"

type BlueAllianceProvider interface {
	Status(ctx context.Context) (ExternalStatus, error)
	EventsBySeason(ctx context.Context, season string) ([]frc.Event, error)
	EventMatches(ctx context.Context, season, event string) ([]frc.Match, error)
	EventTeamKeys(ctx context.Context, season, event string) ([]frc.TeamKey, error)
	Match(ctx context.Context, season, event, match string) (frc.Match, error)
}

type ExternalStatus struct {
	MaxSeason     int
	CurrentSeason int
}

type SeasonIndex struct {
	MaxSeason     int `json:"max_season"`
	CurrentSeason int `json:"current_season"`
}

type BlueAllianceConfig struct {
	// Region limits season listings to events in this state/province. Empty disables the filter.
	Region string
}

type BlueAllianceService struct {
	provider BlueAllianceProvider
	pitRepo  pitscouting.Repository
	cfg      BlueAllianceConfig
	logger   *logging.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

func NewBlueAllianceService(
	provider BlueAllianceProvider,
	pitRepo pitscouting.Repository,
	cfg BlueAllianceConfig,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *BlueAllianceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &BlueAllianceService{
		provider: provider,
		pitRepo:  pitRepo,
		cfg:      cfg,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

func (s *BlueAllianceService) Index(ctx context.Context) (SeasonIndex, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlueAllianceService.Index")
	defer span.End()

	status, err := s.provider.Status(ctx)
	if err != nil {
		return SeasonIndex{}, fmt.Errorf("fetch upstream status: %w", err)
	}

	return SeasonIndex{
		MaxSeason:     status.MaxSeason,
		CurrentSeason: status.CurrentSeason,
	}, nil
}

// Season returns event code -> event name for the season's events that pass the validity filter.
func (s *BlueAllianceService) Season(ctx context.Context, season string, ignoreDate bool) (map[string]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlueAllianceService.Season")
	defer span.End()

	events, err := s.provider.EventsBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetch events season=%s: %w", season, err)
	}

	valid, err := filterEvents(events, s.now(), ignoreDate, s.cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("filter events season=%s: %w", season, err)
	}

	out := make(map[string]string, len(valid))
	for _, item := range valid {
		out[item.Code] = item.Name
	}
	return out, nil
}

// Event returns match suffix -> full match key for every match at the event.
func (s *BlueAllianceService) Event(ctx context.Context, season, event string) (map[string]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlueAllianceService.Event")
	defer span.End()

	matches, err := s.provider.EventMatches(ctx, season, event)
	if err != nil {
		return nil, fmt.Errorf("fetch matches event=%s%s: %w", season, event, err)
	}

	out := make(map[string]string, len(matches))
	for _, item := range matches {
		suffix, err := item.Key.Suffix()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
		}
		out[suffix] = string(item.Key)
	}
	return out, nil
}

// EventTeams maps every team code at the event to the match wildcard.
func (s *BlueAllianceService) EventTeams(ctx context.Context, season, event string) (map[string]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlueAllianceService.EventTeams")
	defer span.End()

	keys, err := s.provider.EventTeamKeys(ctx, season, event)
	if err != nil {
		return nil, fmt.Errorf("fetch team keys event=%s%s: %w", season, event, err)
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		code, err := key.Code()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
		}
		out[code] = MatchWildcard
	}
	return out, nil
}

// UnfilledTeams returns the event's team numbers that still lack a pit scouting
// record, ascending. The upstream fetch and the local lookup run concurrently.
func (s *BlueAllianceService) UnfilledTeams(ctx context.Context, season, event string) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlueAllianceService.UnfilledTeams")
	defer span.End()

	var (
		keys    []frc.TeamKey
		keysErr error
		scouted pitscouting.TeamSet
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		keys, keysErr = s.provider.EventTeamKeys(ctx, season, event)
	})
	wg.Go(func() {
		scouted = s.scoutedTeams(ctx, season, event)
	})
	wg.Wait()

	if keysErr != nil {
		return nil, fmt.Errorf("fetch team keys event=%s%s: %w", season, event, keysErr)
	}

	numbers := make([]int, 0, len(keys))
	for _, key := range keys {
		n, err := key.Number()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
		}
		numbers = append(numbers, n)
	}
	return scouted.Missing(numbers), nil
}

// Match returns bare team code -> alliance name for a single match.
func (s *BlueAllianceService) Match(ctx context.Context, season, event, match string) (map[string]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlueAllianceService.Match")
	defer span.End()

	item, err := s.provider.Match(ctx, season, event, match)
	if err != nil {
		return nil, fmt.Errorf("fetch match %s%s_%s: %w", season, event, match, err)
	}

	out, err := item.TeamAlliances()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	return out, nil
}

// scoutedTeams never fails: a lookup error is logged and treated as nothing scouted yet.
func (s *BlueAllianceService) scoutedTeams(ctx context.Context, season, event string) pitscouting.TeamSet {
	if s.pitRepo == nil {
		return pitscouting.TeamSet{}
	}

	set, err := s.pitRepo.ListScoutedTeams(ctx, season, event)
	if err != nil {
		s.metrics.LookupFailure()
		s.logger.WarnContext(ctx, "pit scouting lookup failed, treating as empty",
			"season", season,
			"event", event,
			"error", err,
		)
		return pitscouting.TeamSet{}
	}
	return set
}

func filterEvents(events []frc.Event, today time.Time, ignoreDate bool, region string) ([]frc.Event, error) {
	out := make([]frc.Event, 0, len(events))
	for _, item := range events {
		ok, err := item.IsValid(today, ignoreDate, region)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// ParseSeason accepts only numeric seasons such as "2023".
func ParseSeason(raw string) (int, error) {
	season, err := strconv.Atoi(raw)
	if err != nil || season <= 0 {
		return 0, fmt.Errorf("%w: season %q", ErrNotFound, raw)
	}
	return season, nil
}
