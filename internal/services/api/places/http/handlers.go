// Package http provides http transport for the places passthrough
package http

import (
	stdhttp "net/http"
	"strings"

	"tripmaker/internal/adapters/directory/tripadvisor"
	"tripmaker/internal/modkit/httpkit"
	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/platform/net/http/bind"
	"tripmaker/internal/services/api/places/domain"
	svc "tripmaker/internal/services/api/places/service"
)

// Register mounts places endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/{id}", h.place)
	httpkit.Get(r, "/{id}/photos", h.photos)
	httpkit.Get(r, "/{id}/reviews", h.reviews)
}

type handlers struct{ svc svc.Service }

// query parses the shared query string, language falls back to Accept-Language
func query(r *stdhttp.Request, paged bool) (domain.Query, error) {
	v := r.URL.Query()
	in := domain.QueryInput{
		Language: strings.TrimSpace(v.Get("language")),
		Currency: strings.ToUpper(strings.TrimSpace(v.Get("currency"))),
		Source:   strings.TrimSpace(v.Get("source")),
	}
	if err := bind.Validate(in); err != nil {
		return domain.Query{}, err
	}

	q := domain.Query{Currency: in.Currency}
	if in.Language == "" {
		q.Language = tripadvisor.MatchLanguage(r.Header.Get("Accept-Language"))
	} else {
		l, err := tripadvisor.ParseLanguage(in.Language)
		if err != nil {
			return domain.Query{}, perr.WithField(perr.Validationf("%s", err.Error()), "language")
		}
		q.Language = l
	}
	if in.Source != "" {
		src, err := tripadvisor.ParsePhotoSource(in.Source)
		if err != nil {
			return domain.Query{}, perr.WithField(perr.Validationf("%s", err.Error()), "source")
		}
		q.Source = &src
	}
	if !paged {
		return q, nil
	}

	var err error
	if q.Limit, err = httpkit.QueryInt(r, "limit", 0, 0, domain.MaxPage); err != nil {
		return domain.Query{}, err
	}
	if q.Offset, err = httpkit.QueryInt(r, "offset", 0, 0, 1<<20); err != nil {
		return domain.Query{}, err
	}
	return q, nil
}

// swagger:route GET /places/{id} Places placesGet
// @Summary Location details
// @Tags Places
// @Produce json
// @Param id path string true "Location id"
// @Param language query string false "Directory language, negotiated from Accept-Language when absent"
// @Param currency query string false "ISO 4217 code"
// @Success 200 {object} domain.PlaceOut "ok"
// @Failure 404 {object} httpkit.Envelope "unknown location"
// @Failure 502 {object} httpkit.Envelope "directory failure"
// @Router /places/{id} [get]
func (h *handlers) place(r *stdhttp.Request) (any, error) {
	q, err := query(r, false)
	if err != nil {
		return nil, err
	}
	return h.svc.Place(r.Context(), httpkit.URLParam(r, "id"), q)
}

// swagger:route GET /places/{id}/photos Places placesPhotos
// @Summary One page of location photos
// @Tags Places
// @Produce json
// @Param id path string true "Location id"
// @Param language query string false "Directory language"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param source query string false "Expert, Management or Traveler"
// @Success 200 {object} domain.PhotosOutput "ok"
// @Router /places/{id}/photos [get]
func (h *handlers) photos(r *stdhttp.Request) (any, error) {
	q, err := query(r, true)
	if err != nil {
		return nil, err
	}
	return h.svc.Photos(r.Context(), httpkit.URLParam(r, "id"), q)
}

// swagger:route GET /places/{id}/reviews Places placesReviews
// @Summary One page of location reviews
// @Tags Places
// @Produce json
// @Param id path string true "Location id"
// @Param language query string false "Directory language"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} domain.ReviewsOutput "ok"
// @Router /places/{id}/reviews [get]
func (h *handlers) reviews(r *stdhttp.Request) (any, error) {
	q, err := query(r, true)
	if err != nil {
		return nil, err
	}
	return h.svc.Reviews(r.Context(), httpkit.URLParam(r, "id"), q)
}
