package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"daleel/internal/domain"
)

// ImageKey is the cache key of a doctor's image probe result.
func ImageKey(doctorID int64) string {
	return fmt.Sprintf("image:%d", doctorID)
}

// ProbeService checks doctor images and records which ones are broken, so
// cards can fall back to a placeholder.
type ProbeService struct {
	checker domain.ImageChecker
	cache   domain.Cache
	ttlSec  int
}

func NewProbeService(c domain.ImageChecker, cache domain.Cache, ttlSec int) *ProbeService {
	return &ProbeService{checker: c, cache: cache, ttlSec: ttlSec}
}

// ProbeDoctor checks one image. A definite miss (404, 410) is cached as
// unavailable; transport or 5xx failures bubble up and leave any previous
// result alone. A doctor without an image URL always gets the placeholder,
// so any status left from an earlier URL is dropped.
func (s *ProbeService) ProbeDoctor(ctx context.Context, d domain.DoctorRecord) (domain.ImageStatus, error) {
	st := domain.ImageStatus{DoctorID: d.ID, URL: d.ImageURL}
	if d.ImageURL == "" {
		if s.cache != nil {
			if err := s.cache.Del(ctx, ImageKey(d.ID)); err != nil {
				return st, fmt.Errorf("drop image status for %d: %w", d.ID, err)
			}
		}
		return st, nil
	}

	ok, err := s.checker.Check(ctx, d.ImageURL)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return st, err
	}
	st.Available = ok && err == nil
	if s.cache != nil {
		if err := s.cache.Set(ctx, ImageKey(d.ID), st, s.ttlSec); err != nil {
			return st, fmt.Errorf("cache image status for %d: %w", d.ID, err)
		}
	}
	return st, nil
}

// ProbeAll probes every doctor with at most workers checks in flight.
// Failures are logged per doctor; the returned count is the number of
// doctors whose status was recorded.
func (s *ProbeService) ProbeAll(ctx context.Context, doctors []domain.DoctorRecord, workers int) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)

	for _, d := range doctors {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return ok, err
		}

		wg.Add(1)
		go func(d domain.DoctorRecord) {
			defer wg.Done()
			defer sem.Release(1)

			st, err := s.ProbeDoctor(ctx, d)
			if err != nil {
				log.Warn().Int64("id", d.ID).Err(err).Msg("image probe failed")
				return
			}
			log.Info().Int64("id", d.ID).Bool("available", st.Available).Msg("image probed")
			mu.Lock()
			ok++
			mu.Unlock()
		}(d)
	}

	wg.Wait()
	return ok, nil
}
