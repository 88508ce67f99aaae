// Package loadcheck drives a running service with random applicant profiles
// and checks every answer against the recommendation rules.
package loadcheck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/gradpredict/internal/domain/catalog"
	"github.com/okian/gradpredict/pkg/logger"
)

// WorkerChannelMultiplier sizes the job channel relative to the worker count.
const WorkerChannelMultiplier = 2

type job struct {
	index   int
	profile PredictRequest
}

// Run executes the complete load check. It returns the collected stats and
// a non-nil error when the service was unreachable or any response broke
// a guarantee.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting load check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.Profiles),
		logger.Int("repeats", config.Repeats),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.getJSON(ctx, "/healthz", nil); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the catalog the answers are checked against
	var listing struct {
		Colleges []catalog.Entry `json:"colleges"`
	}
	if err := client.getJSON(ctx, "/api/colleges", &listing); err != nil {
		return stats, fmt.Errorf("catalog retrieval failed: %w", err)
	}

	// Step 3: Submit profiles, then resubmit a prefix
	profiles := generateProfiles(config.Profiles, config.Seed)
	first := submit(ctx, config, client, profiles, listing.Colleges, stats)

	repeats := min(config.Repeats, len(profiles))
	second := submit(ctx, config, client, profiles[:repeats], listing.Colleges, stats)
	for i := range second {
		if first[i] == nil || second[i] == nil {
			continue
		}
		if err := verifyRepeat(*first[i], *second[i]); err != nil {
			recordViolation(ctx, config, stats, err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%d of %d requests failed", stats.Failed, stats.Submitted)
	}
	if stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d responses", ErrViolation, stats.Violations)
	}
	return stats, nil
}

// submit posts profiles through a worker pool. The result slice is indexed
// like profiles; failed requests leave a nil entry.
func submit(ctx context.Context, config *Config, client *HTTPClient, profiles []PredictRequest,
	colleges []catalog.Entry, stats *Stats,
) []*PredictResponse {
	results := make([]*PredictResponse, len(profiles))
	workers := max(config.Workers, 1)

	jobs := make(chan job, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				atomic.AddInt64(&stats.Submitted, 1)
				resp, err := client.predict(ctx, j.profile)
				switch {
				case errors.Is(err, ErrViolation):
					recordViolation(ctx, config, stats, err)
					continue
				case err != nil:
					atomic.AddInt64(&stats.Failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "request failed", logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&stats.Successful, 1)
				if err := verifyResponse(resp, colleges); err != nil {
					recordViolation(ctx, config, stats, err)
				}
				results[j.index] = &resp
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, p := range profiles {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, profile: p}:
			}
		}
	}()

	wg.Wait()
	return results
}

func recordViolation(ctx context.Context, config *Config, stats *Stats, err error) {
	atomic.AddInt64(&stats.Violations, 1)
	if config.Verbose {
		logger.Get().Warn(ctx, "violation", logger.Error(err))
	}
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Any("submitted", stats.Submitted),
		logger.Any("successful", stats.Successful),
		logger.Any("failed", stats.Failed),
		logger.Any("violations", stats.Violations),
		logger.Duration("duration", stats.Duration),
		logger.Float64("predictionsPerSecond", stats.PerSecond()))
}
