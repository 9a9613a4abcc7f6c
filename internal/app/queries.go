package app

import (
	"context"

	"daleel/internal/directory"
	"daleel/internal/domain"
)

// DirectoryService answers browse requests: filter the directory, attach
// the visitor's reviews and the image fallbacks.
type DirectoryService struct {
	dir         *directory.Store
	cache       domain.Cache
	defaultCity string
}

func NewDirectoryService(dir *directory.Store, cache domain.Cache, defaultCity string) *DirectoryService {
	if defaultCity == "" {
		defaultCity = directory.DefaultCity
	}
	return &DirectoryService{dir: dir, cache: cache, defaultCity: defaultCity}
}

// Browse is the data behind one directory page.
type Browse struct {
	State         domain.FilterState
	Result        domain.FilterResult
	Reviews       map[int64][]domain.ReviewEntry
	TotalReviews  int
	MissingImages map[int64]bool
}

func (s *DirectoryService) Directory() *directory.Store { return s.dir }

func (s *DirectoryService) DefaultCity() string { return s.defaultCity }

// State builds a FilterState from raw request values.
func (s *DirectoryService) State(city, search, specialty string) domain.FilterState {
	return NewFilterState(city, search, specialty, s.defaultCity)
}

// Filter runs the filter engine over the whole directory.
func (s *DirectoryService) Filter(st domain.FilterState) domain.FilterResult {
	return FilterDoctors(s.dir.All(), s.dir.AvailableCities(), st)
}

// Browse runs the filter and gathers what the renderer needs. The review
// total always covers the whole directory, not just the filtered cards.
func (s *DirectoryService) Browse(ctx context.Context, reviews *ReviewService, st domain.FilterState) Browse {
	out := Browse{
		State:         st,
		Result:        s.Filter(st),
		Reviews:       map[int64][]domain.ReviewEntry{},
		MissingImages: map[int64]bool{},
	}
	for _, d := range out.Result.Doctors {
		out.Reviews[d.ID] = reviews.GetReviews(ctx, d.ID)
		if s.cache != nil {
			var is domain.ImageStatus
			if ok, _ := s.cache.Get(ctx, ImageKey(d.ID), &is); ok && !is.Available {
				out.MissingImages[d.ID] = true
			}
		}
	}
	out.TotalReviews = reviews.TotalReviews(ctx, s.dir.IDs())
	return out
}

// SubmitReview stores a review for a doctor that exists in the directory.
func (s *DirectoryService) SubmitReview(ctx context.Context, reviews *ReviewService, doctorID int64, text string) (domain.ReviewEntry, error) {
	if _, err := s.dir.Get(doctorID); err != nil {
		return domain.ReviewEntry{}, err
	}
	return reviews.SaveReview(ctx, doctorID, text)
}
