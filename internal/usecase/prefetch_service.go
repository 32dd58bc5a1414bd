package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cardinalbotics/scouting-backend/internal/domain/frc"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/platform/metrics"
	"github.com/panjf2000/ants/v2"
)

const (
	prefetchStatusSuccess = "success"
	prefetchStatusFailed  = "failed"

	prefetchKindMatches = "matches"
	prefetchKindTeams   = "teams"
)

type PrefetchConfig struct {
	Workers int
	Region  string
}

type PrefetchResult struct {
	Season       int                  `json:"season"`
	EventCount   int                  `json:"event_count"`
	TaskCount    int                  `json:"task_count"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	WorkerCount  int                  `json:"worker_count"`
	Tasks        []PrefetchTaskResult `json:"tasks"`
}

type PrefetchTaskResult struct {
	Event      string `json:"event"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type prefetchTask struct {
	event string
	kind  string
}

// PrefetchService warms the upstream cache for events running today in the current season.
type PrefetchService struct {
	provider BlueAllianceProvider
	cfg      PrefetchConfig
	logger   *logging.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

func NewPrefetchService(provider BlueAllianceProvider, cfg PrefetchConfig, logger *logging.Logger, recorder *metrics.Recorder) *PrefetchService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}

	return &PrefetchService{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Warm fetches the current season's valid events and then, on a worker pool, each
// event's matches and team keys. Per-event failures are counted, not returned.
func (s *PrefetchService) Warm(ctx context.Context) (PrefetchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrefetchService.Warm")
	defer span.End()

	status, err := s.provider.Status(ctx)
	if err != nil {
		return PrefetchResult{}, fmt.Errorf("fetch upstream status: %w", err)
	}
	season := strconv.Itoa(status.CurrentSeason)

	events, err := s.provider.EventsBySeason(ctx, season)
	if err != nil {
		return PrefetchResult{}, fmt.Errorf("fetch events season=%s: %w", season, err)
	}
	valid, err := filterEvents(events, s.now(), false, s.cfg.Region)
	if err != nil {
		return PrefetchResult{}, fmt.Errorf("filter events season=%s: %w", season, err)
	}

	result := PrefetchResult{
		Season:      status.CurrentSeason,
		EventCount:  len(valid),
		WorkerCount: s.cfg.Workers,
	}
	tasks := buildPrefetchTasks(valid)
	result.TaskCount = len(tasks)
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan PrefetchTaskResult, len(tasks))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return PrefetchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := PrefetchTaskResult{Event: task.event, Kind: task.kind, Status: prefetchStatusSuccess}
			if err := s.runTask(ctx, season, task); err != nil {
				row.Status = prefetchStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "prefetch task failed",
					"season", season,
					"event", task.event,
					"kind", task.kind,
					"error", err,
				)
			} else {
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			s.metrics.PrefetchTask(row.Status)

			results <- row
		}); err != nil {
			workers.Done()
			return PrefetchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].Event != result.Tasks[j].Event {
			return result.Tasks[i].Event < result.Tasks[j].Event
		}
		return result.Tasks[i].Kind < result.Tasks[j].Kind
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *PrefetchService) runTask(ctx context.Context, season string, task prefetchTask) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch task.kind {
	case prefetchKindMatches:
		_, err := s.provider.EventMatches(ctx, season, task.event)
		return err
	case prefetchKindTeams:
		_, err := s.provider.EventTeamKeys(ctx, season, task.event)
		return err
	default:
		return fmt.Errorf("unknown prefetch kind %q", task.kind)
	}
}

func buildPrefetchTasks(events []frc.Event) []prefetchTask {
	tasks := make([]prefetchTask, 0, len(events)*2)
	for _, item := range events {
		if item.Code == "" {
			continue
		}
		tasks = append(tasks,
			prefetchTask{event: item.Code, kind: prefetchKindMatches},
			prefetchTask{event: item.Code, kind: prefetchKindTeams},
		)
	}
	return tasks
}
