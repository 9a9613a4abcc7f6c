package domain

import (
	"strconv"
	"time"
)

// ReviewEntry is the persisted shape of a visitor review: {text, date, id}.
type ReviewEntry struct {
	Text string `json:"text"`
	Date string `json:"date"`
	ID   int64  `json:"id"`
}

// ReviewTimeLayout matches JavaScript's Date.prototype.toISOString.
const ReviewTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// CreatedAt parses Date. ok is false for entries written with a date we
// cannot read; they are still shown, just without a date.
func (r ReviewEntry) CreatedAt() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339Nano, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ReviewsKey is the storage key holding the review list of a doctor.
func ReviewsKey(doctorID int64) string {
	return "reviews_" + strconv.FormatInt(doctorID, 10)
}
