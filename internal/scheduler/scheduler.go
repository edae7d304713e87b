// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scheduler runs export cycles periodically, backing off while cycles fail.
package scheduler // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/internal/scheduler"

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
)

// RetrySettings defines how failed cycles are retried.
// The current supported strategy is exponential backoff.
type RetrySettings struct {
	// InitialInterval the time to wait after the first failure before retrying.
	InitialInterval time.Duration
	// MaxInterval is the upper bound on backoff interval.
	MaxInterval time.Duration
	// MaxElapsedTime is the time spent retrying before the scheduler gives up and
	// waits for the next regular cycle. Zero retries forever.
	MaxElapsedTime time.Duration
}

// DefaultRetrySettings returns the default settings for RetrySettings.
func DefaultRetrySettings() RetrySettings {
	return RetrySettings{
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		MaxElapsedTime:  5 * time.Minute,
	}
}

// Cycle is one export cycle.
type Cycle func(ctx context.Context) error

// Scheduler runs a Cycle every Interval.
type Scheduler struct {
	logger   *zap.Logger
	interval time.Duration
	retry    RetrySettings
	cycle    Cycle

	cycles   *atomic.Int64
	failures *atomic.Int64
}

// New creates a Scheduler running cycle every interval.
func New(logger *zap.Logger, interval time.Duration, retry RetrySettings, cycle Cycle) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	if cycle == nil {
		return nil, errors.New("nil cycle")
	}
	return &Scheduler{
		logger:   logger,
		interval: interval,
		retry:    retry,
		cycle:    cycle,
		cycles:   atomic.NewInt64(0),
		failures: atomic.NewInt64(0),
	}, nil
}

// Cycles returns the number of cycles run so far.
func (s *Scheduler) Cycles() int64 {
	return s.cycles.Load()
}

// Failures returns the number of failed cycles so far.
func (s *Scheduler) Failures() int64 {
	return s.failures.Load()
}

// Run runs cycles until ctx is done or a cycle fails with a fatal or configuration
// error, which Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	// Do not use NewExponentialBackOff since it calls Reset and the code here must
	// call Reset after changing the InitialInterval.
	expBackoff := backoff.ExponentialBackOff{
		InitialInterval:     s.retry.InitialInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         s.retry.MaxInterval,
		MaxElapsedTime:      s.retry.MaxElapsedTime,
		Clock:               backoff.SystemClock,
	}
	expBackoff.Reset()

	for {
		s.cycles.Inc()
		err := s.cycle(ctx)
		delay := s.interval
		switch {
		case err == nil:
			expBackoff.Reset()
		case ctx.Err() != nil:
			return nil
		case distribution.IsFatal(err) || distribution.IsConfiguration(err):
			s.failures.Inc()
			return err
		default:
			s.failures.Inc()
			if backoffDelay := expBackoff.NextBackOff(); backoffDelay != backoff.Stop {
				delay = backoffDelay
				s.logger.Warn("Export cycle failed, retrying", zap.Duration("delay", delay), zap.Error(err))
			} else {
				expBackoff.Reset()
				s.logger.Error("Export cycle failed, max elapsed time expired", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}
