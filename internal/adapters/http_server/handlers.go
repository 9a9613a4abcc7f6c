// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"daleel/internal/adapters/observability"
	"daleel/internal/app"
	"daleel/internal/directory"
	"daleel/internal/domain"
	"daleel/internal/render"
	"daleel/internal/sanitizer"
)

const maxReviewBody = 4 << 10

type Handlers struct {
	Q       *app.DirectoryService
	Reviews *app.ReviewService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type reviewRequest struct {
	Text string `json:"text" validate:"required"`
}

type doctorsResponse struct {
	City       string                `json:"city"`
	ComingSoon bool                  `json:"coming_soon"`
	Count      int                   `json:"count"`
	Doctors    []domain.DoctorRecord `json:"doctors"`
}

type reviewsResponse struct {
	DoctorID int64                `json:"doctor_id"`
	Count    int                  `json:"count"`
	Reviews  []domain.ReviewEntry `json:"reviews"`
}

var validate = validator.New()

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.page)
	s.mux.Post("/doctors/{id}/reviews", h.postReviewForm)
	s.mux.Get("/v1/doctors", h.listDoctors)
	s.mux.Get("/v1/doctors/{id}/reviews", h.listReviews)
	s.mux.Post("/v1/doctors/{id}/reviews", h.postReview)
}

// reviews returns the review service scoped to the requesting visitor.
func (h *Handlers) reviews(r *http.Request) *app.ReviewService {
	return h.Reviews.For(VisitorID(r.Context()))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func doctorID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handlers) page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := sanitizer.Sanitize(q.Get("q"))
	st := h.Q.State(q.Get("city"), search, q.Get("filter"))
	b := h.Q.Browse(r.Context(), h.reviews(r), st)

	page := render.BuildPage(render.PageInput{
		State:         b.State,
		Result:        b.Result,
		Reviews:       b.Reviews,
		TotalReviews:  b.TotalReviews,
		MissingImages: b.MissingImages,
		Cities:        directory.Governorates,
		QuickFilters:  directory.QuickFilters,
		Search:        search,
		Notice:        q.Get("notice"),
	})

	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, page); err != nil {
		log.Error().Err(err).Msg("render page failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write page body")
	}
}

// postReviewForm handles the card form and redirects back to the page the
// visitor came from with a notice.
func (h *Handlers) postReviewForm(w http.ResponseWriter, r *http.Request) {
	id, ok := doctorID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxReviewBody)
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Form", err.Error())
		return
	}

	notice := render.NoticeSaved
	text := r.PostFormValue("text")
	if strings.TrimSpace(text) == "" {
		notice = render.NoticeEmpty
		observability.ObserveReview("invalid")
	} else {
		_, err := h.Q.SubmitReview(r.Context(), h.reviews(r), id, text)
		switch {
		case err == nil:
			observability.ObserveReview("saved")
		case errors.Is(err, domain.ErrInvalidReview):
			notice = render.NoticeInvalid
			observability.ObserveReview("invalid")
		case errors.Is(err, domain.ErrNotFound):
			observability.ObserveReview("not_found")
			writeProblem(w, http.StatusNotFound, "Not Found", "doctor not found")
			return
		default:
			notice = render.NoticeError
			observability.ObserveReview("error")
		}
	}

	back := render.PageURL(r.PostFormValue("city"), sanitizer.Sanitize(r.PostFormValue("q")), r.PostFormValue("filter"), notice)
	http.Redirect(w, r, fmt.Sprintf("%s#doctor-%d", back, id), http.StatusSeeOther)
}

func (h *Handlers) listDoctors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := h.Q.Filter(h.Q.State(q.Get("city"), q.Get("q"), q.Get("filter")))
	docs := res.Doctors
	if docs == nil {
		docs = []domain.DoctorRecord{}
	}
	writeJSON(w, http.StatusOK, doctorsResponse{
		City:       res.City,
		ComingSoon: res.ComingSoon,
		Count:      len(docs),
		Doctors:    docs,
	})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := doctorID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	if _, err := h.Q.Directory().Get(id); err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "doctor not found")
		return
	}

	list := h.reviews(r).GetReviews(r.Context(), id)
	etag, body := calcETagAndBody(reviewsResponse{DoctorID: id, Count: len(list), Reviews: list})
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listReviews body")
	}
}

func (h *Handlers) postReview(w http.ResponseWriter, r *http.Request) {
	id, ok := doctorID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}

	var req reviewRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReviewBody))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be a JSON object with a text field")
		return
	}
	if err := validate.Struct(req); err != nil {
		observability.ObserveReview("invalid")
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Review", "text is required")
		return
	}

	entry, err := h.Q.SubmitReview(r.Context(), h.reviews(r), id, req.Text)
	switch {
	case err == nil:
		observability.ObserveReview("saved")
		writeJSON(w, http.StatusCreated, entry)
	case errors.Is(err, domain.ErrInvalidReview):
		observability.ObserveReview("invalid")
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Review", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveReview("not_found")
		writeProblem(w, http.StatusNotFound, "Not Found", "doctor not found")
	default:
		observability.ObserveReview("error")
		log.Error().Err(err).Int64("doctor_id", id).Msg("save review failed")
		writeProblem(w, http.StatusServiceUnavailable, "Storage Unavailable", "review could not be saved, try again")
	}
}
