package app

import (
	"strings"

	"daleel/internal/domain"
	"daleel/internal/normalize"
	"daleel/internal/sanitizer"
)

// NewFilterState builds the filter state from raw request input. The search
// term is sanitized and normalized here so the engine only compares
// normalized strings.
func NewFilterState(city, rawSearch, specialty, defaultCity string) domain.FilterState {
	city = strings.TrimSpace(sanitizer.Sanitize(city))
	if city == "" {
		city = defaultCity
	}
	specialty = strings.TrimSpace(sanitizer.Sanitize(specialty))
	if specialty == "" {
		specialty = domain.SpecialtyAll
	}
	return domain.FilterState{
		SelectedCity:    city,
		SearchTerm:      normalize.Normalize(sanitizer.Sanitize(rawSearch)),
		SpecialtyFilter: specialty,
	}
}

// FilterDoctors applies st to dir. A city outside available short-circuits
// to the coming-soon result without running the predicate. Matching records
// keep their directory order.
func FilterDoctors(dir []domain.DoctorRecord, available []string, st domain.FilterState) domain.FilterResult {
	res := domain.FilterResult{City: st.SelectedCity}
	if !contains(available, st.SelectedCity) {
		res.ComingSoon = true
		return res
	}

	var spec string
	if st.SpecialtyFilter != domain.SpecialtyAll {
		spec = normalize.Normalize(st.SpecialtyFilter)
	}

	res.Doctors = make([]domain.DoctorRecord, 0, len(dir))
	for _, d := range dir {
		if d.City != st.SelectedCity {
			continue
		}
		if st.SearchTerm != "" && !matchesSearch(d, st.SearchTerm) {
			continue
		}
		if spec != "" && !normalize.Contains(d.Specialty, spec) {
			continue
		}
		res.Doctors = append(res.Doctors, d)
	}
	return res
}

func matchesSearch(d domain.DoctorRecord, term string) bool {
	if normalize.Contains(d.Name, term) || normalize.Contains(d.Specialty, term) {
		return true
	}
	for _, k := range d.Keywords {
		if normalize.Contains(k, term) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
