// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
)

const maxFormBytes = 1 << 20

type Handlers struct {
	Q     *app.QueryService
	R     *app.ReviewService
	Store domain.ReviewStore
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(r chi.Router) {
		r.Get("/", h.listReviews)
		r.Get("/reviews", h.listReviews)
	})
	s.mux.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		r.Post("/", h.createReview)
		r.Post("/reviews", h.createReview)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps client-input sentinels to 400 and anything else to 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	case errors.Is(err, domain.ErrInvalidLocation):
		log.Debug().Err(err).Strs("allowed", domain.Locations()).Msg("location rejected")
		writeError(w, http.StatusBadRequest, "Invalid location")
	case errors.Is(err, domain.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Missing ReviewBody or Location")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q, err := app.ParseReviewQuery(qs.Get("location"), qs.Get("start_date"), qs.Get("end_date"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out, err := h.Q.Query(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	compounds := make([]float64, len(out))
	for i, sr := range out {
		compounds[i] = sr.Sentiment.Compound
	}
	observability.ObserveQuery(compounds)

	etag, body, err := calcETagAndBody(out)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
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

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Debug().Err(err).Msg("unparsable form body")
		writeDomainError(w, r, domain.ErrMissingFields)
		return
	}

	out, err := h.R.Create(r.Context(), r.PostForm.Get("ReviewBody"), r.PostForm.Get("Location"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	size := 0
	if h.Store != nil {
		size = h.Store.Len()
	}
	observability.ObserveCreated(out.Location, out.Sentiment.Compound, size)

	writeJSON(w, http.StatusCreated, out)
}
