// Package http provides http transport for discovery
package http

import (
	stdhttp "net/http"
	"strings"

	"tripmaker/internal/modkit/httpkit"
	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/services/discover/domain"
	svc "tripmaker/internal/services/discover/service"

	"github.com/google/uuid"
)

// RunIDHeader carries the run id on every discover answer, errors included
const RunIDHeader = "X-Run-ID"

// Register mounts discovery endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/", h.discover, httpkit.JSONOptions{MaxBytes: 1 << 14, DisallowUnknown: true, AllowEmptyBody: true})
	httpkit.Get(r, "/defaults", h.defaults)
	httpkit.PostJSON(r, "/check", h.check)
	httpkit.Get(r, "/runs/{id}", h.run)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /discover Discover discoverRun
// @Summary Discover nearby points of interest
// @Description Samples random points around the center until count locations within max_distance rated at least min_rating are found
// @Tags Discover
// @Accept json
// @Produce json
// @Param payload body domain.DiscoverInput false "Search settings, omitted fields take the defaults"
// @Success 200 {object} domain.DiscoverOutput "ok"
// @Failure 400 {object} httpkit.Envelope "invalid settings"
// @Failure 404 {object} httpkit.Envelope "attempt or time budget spent"
// @Failure 408 {object} httpkit.Envelope "canceled"
// @Failure 502 {object} httpkit.Envelope "directory failure"
// @Router /discover [post]
func (h *handlers) discover(r *stdhttp.Request, in domain.DiscoverInput) (any, error) {
	req, unit, err := in.Request()
	if err != nil {
		return nil, err
	}
	res, err := h.svc.Run(r.Context(), req)
	hdr := stdhttp.Header{}
	if res.RunID != uuid.Nil {
		hdr.Set(RunIDHeader, res.RunID.String())
	}
	if err != nil {
		return httpkit.Response{Body: err, Header: hdr}, nil
	}
	return httpkit.Response{Status: stdhttp.StatusOK, Body: domain.Present(req, unit, res), Header: hdr}, nil
}

// swagger:route GET /discover/defaults Discover discoverDefaults
// @Summary Settings defaults and bounds
// @Tags Discover
// @Produce json
// @Success 200 {object} domain.DefaultsOutput "ok"
// @Router /discover/defaults [get]
func (h *handlers) defaults(*stdhttp.Request) (any, error) {
	return domain.Defaults(h.svc.Limits()), nil
}

// swagger:route POST /discover/check Discover discoverCheck
// @Summary Validate one settings field
// @Tags Discover
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "Field and raw value"
// @Success 200 {object} domain.CheckOutput "ok"
// @Failure 400 {object} httpkit.Envelope "invalid"
// @Router /discover/check [post]
func (h *handlers) check(_ *stdhttp.Request, in domain.CheckInput) (any, error) {
	return h.svc.Limits().Check(in)
}

// swagger:route GET /discover/runs/{id} Discover discoverGetRun
// @Summary Ledger record of one run
// @Tags Discover
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.RunOut "ok"
// @Failure 404 {object} httpkit.Envelope "unknown run or ledger disabled"
// @Router /discover/runs/{id} [get]
func (h *handlers) run(r *stdhttp.Request) (any, error) {
	raw := strings.TrimSpace(httpkit.URLParam(r, "id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, perr.WithField(perr.Validationf("run id %q is not a uuid", raw), "id")
	}
	run, err := h.svc.GetRun(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return domain.RunOutOf(run), nil
}
