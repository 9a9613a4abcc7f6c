// Package directory holds the read-only list of doctors.
package directory

import (
	"fmt"

	"daleel/internal/domain"
)

// Store is immutable after construction; it is safe for concurrent reads.
type Store struct {
	doctors   []domain.DoctorRecord
	byID      map[int64]int
	available []string
}

// New builds a Store preserving the order of records. Cities with data are
// derived from the records, in first-seen order.
func New(records []domain.DoctorRecord) (*Store, error) {
	s := &Store{
		doctors: make([]domain.DoctorRecord, 0, len(records)),
		byID:    make(map[int64]int, len(records)),
	}
	seenCity := map[string]bool{}
	for _, r := range records {
		if _, dup := s.byID[r.ID]; dup {
			return nil, fmt.Errorf("directory: duplicate doctor id %d", r.ID)
		}
		r.Keywords = append([]string(nil), r.Keywords...)
		s.byID[r.ID] = len(s.doctors)
		s.doctors = append(s.doctors, r)
		if !seenCity[r.City] {
			seenCity[r.City] = true
			s.available = append(s.available, r.City)
		}
	}
	return s, nil
}

// Default returns the built-in directory.
func Default() *Store {
	s, err := New(Seed)
	if err != nil {
		panic(err)
	}
	return s
}

// All returns a copy of every record in directory order.
func (s *Store) All() []domain.DoctorRecord {
	out := make([]domain.DoctorRecord, len(s.doctors))
	copy(out, s.doctors)
	return out
}

func (s *Store) Get(id int64) (domain.DoctorRecord, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.DoctorRecord{}, domain.ErrNotFound
	}
	return s.doctors[i], nil
}

func (s *Store) IDs() []int64 {
	ids := make([]int64, len(s.doctors))
	for i, d := range s.doctors {
		ids[i] = d.ID
	}
	return ids
}

// AvailableCities lists the cities that have at least one doctor.
func (s *Store) AvailableCities() []string {
	return append([]string(nil), s.available...)
}

func (s *Store) Len() int { return len(s.doctors) }
