package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"daleel/internal/domain"
	"daleel/internal/sanitizer"
)

// ReviewService keeps per-doctor review lists in a KV store, one JSON array
// per key. A service may be bound to a visitor scope with For; scoped
// services share the store and the write locks of their parent.
type ReviewService struct {
	kv    domain.KV
	scope string
	locks *keyLocks
	now   func() time.Time
}

func NewReviewService(kv domain.KV) *ReviewService {
	return &ReviewService{kv: kv, locks: &keyLocks{}, now: time.Now}
}

// WithClock replaces the time source used for review ids and dates.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	cp := *s
	cp.now = now
	return &cp
}

// For returns the service bound to a visitor's keyspace. An empty id gives
// the unscoped keyspace.
func (s *ReviewService) For(visitorID string) *ReviewService {
	cp := *s
	cp.scope = visitorID
	return &cp
}

func (s *ReviewService) key(doctorID int64) string {
	if s.scope == "" {
		return domain.ReviewsKey(doctorID)
	}
	return "visitor:" + s.scope + ":" + domain.ReviewsKey(doctorID)
}

// GetReviews returns the stored reviews of a doctor in insertion order.
// It never fails: unreadable storage or corrupted data is logged and
// reported as an empty list.
func (s *ReviewService) GetReviews(ctx context.Context, doctorID int64) []domain.ReviewEntry {
	out, err := s.load(ctx, s.key(doctorID))
	if err != nil {
		log.Error().Err(err).Int64("doctor_id", doctorID).Msg("read reviews failed")
		return []domain.ReviewEntry{}
	}
	return out
}

// SaveReview sanitizes and validates rawText, then appends it to the
// doctor's list with a full read-modify-write. Storage is untouched when
// validation fails.
func (s *ReviewService) SaveReview(ctx context.Context, doctorID int64, rawText string) (domain.ReviewEntry, error) {
	clean := sanitizer.Sanitize(rawText)
	if !sanitizer.ValidateReview(clean) {
		return domain.ReviewEntry{}, domain.ErrInvalidReview
	}

	key := s.key(doctorID)
	unlock := s.locks.lock(key)
	defer unlock()

	list, err := s.load(ctx, key)
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return domain.ReviewEntry{}, err
	}
	if err != nil {
		// corrupted list: start over, as a fresh read would show it empty anyway
		log.Warn().Err(err).Str("key", key).Msg("replacing unreadable review list")
		list = nil
	}

	now := s.now().UTC()
	entry := domain.ReviewEntry{
		Text: clean,
		Date: now.Format(domain.ReviewTimeLayout),
		ID:   nextID(list, now),
	}
	list = append(list, entry)

	b, err := json.Marshal(list)
	if err != nil {
		return domain.ReviewEntry{}, fmt.Errorf("encode reviews: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("write reviews failed")
		return domain.ReviewEntry{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return entry, nil
}

// TotalReviews sums the review counts of the given doctors.
func (s *ReviewService) TotalReviews(ctx context.Context, doctorIDs []int64) int {
	total := 0
	for _, id := range doctorIDs {
		total += len(s.GetReviews(ctx, id))
	}
	return total
}

// load distinguishes an unavailable backend (ErrStorageUnavailable) from an
// unparseable value (any other error). A missing key is an empty list.
func (s *ReviewService) load(ctx context.Context, key string) ([]domain.ReviewEntry, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []domain.ReviewEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if raw == "" {
		return []domain.ReviewEntry{}, nil
	}
	return decodeReviews(raw)
}

// decodeReviews parses a stored list and drops entries that are not an
// object with a non-empty string text and a date. Surviving text is passed
// through the sanitizer again so nothing written around this service can
// reach the renderer raw.
func decodeReviews(raw string) ([]domain.ReviewEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	out := make([]domain.ReviewEntry, 0, len(items))
	for _, it := range items {
		var m map[string]any
		if err := json.Unmarshal(it, &m); err != nil || m == nil {
			continue
		}
		text, ok := m["text"].(string)
		if !ok || text == "" {
			continue
		}
		date, ok := entryDate(m["date"])
		if !ok {
			continue
		}
		text = sanitizer.Sanitize(text)
		if !sanitizer.ValidateDefault(text) {
			continue
		}
		var id int64
		if f, ok := m["id"].(float64); ok && validStamp(f) {
			id = int64(f)
		}
		out = append(out, domain.ReviewEntry{Text: text, Date: date, ID: id})
	}
	return out, nil
}

// entryDate accepts an ISO string or a millisecond epoch number.
func entryDate(v any) (string, bool) {
	switch d := v.(type) {
	case string:
		return d, d != ""
	case float64:
		if !validStamp(d) {
			return "", false
		}
		return time.UnixMilli(int64(d)).UTC().Format(domain.ReviewTimeLayout), true
	}
	return "", false
}

// maxStamp is the largest integer a JSON number carries exactly; stored ids
// and epoch dates beyond it are treated as absent.
const maxStamp = 1<<53 - 1

func validStamp(f float64) bool {
	return f > 0 && f <= maxStamp && f == math.Trunc(f)
}

// nextID derives the id from the submission time, bumped past the largest
// id already in the list so two submissions in the same millisecond stay
// distinct.
func nextID(list []domain.ReviewEntry, now time.Time) int64 {
	id := now.UnixMilli()
	for _, e := range list {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

const lockStripes = 64

type keyLocks struct {
	mu [lockStripes]sync.Mutex
}

func (l *keyLocks) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	m := &l.mu[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
