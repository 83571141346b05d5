package api

import (
	"errors"
	"math"
	"mime"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gotidy/ptr"
	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/isochrone"
	"github.com/lowtide-maps/severance/pkg/mapmodel"
	"github.com/lowtide-maps/severance/pkg/severr"
)

// maxBodyBytes bounds a request body the same way the teacher's route
// handler did: a pedestrian query or Settings tweak never needs more.
const maxBodyBytes = 4096

// Handlers holds the HTTP handlers and the MapModel they query. Per
// spec.md §5, Route, CalculateIsochrone and CalculateDetourScores refresh
// the resident Router's cost vectors and so require exclusive access;
// Render, FindConnectedComponents and GetCrossingDistances are pure
// reads. Each of these six handlers holds mu for its whole call, which
// serializes all of them against each other rather than distinguishing
// readers from writers, matching §5's fallback rule: "no
// locking primitives are prescribed; hosts must serialize mutating calls
// externally." The semaphore middleware in server.go only caps how many
// requests are in flight.
type Handlers struct {
	mu    sync.Mutex
	model *mapmodel.MapModel
	stats StatsResponse
}

// NewHandlers creates handlers serving model, with the precomputed stats
// response a CLI builds once at startup.
func NewHandlers(model *mapmodel.MapModel, stats StatsResponse) *Handlers {
	return &Handlers{model: model, stats: stats}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	var req CompareRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateLonLat(w, req.X1, req.Y1, "start") || !validateLonLat(w, req.X2, req.Y2, "end") {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	fc, err := h.model.Route(r.Context(), req.X1, req.Y1, req.X2, req.Y2, req.Settings.toSettings())
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// HandleIsochrone handles POST /api/v1/isochrone.
func (h *Handlers) HandleIsochrone(w http.ResponseWriter, r *http.Request) {
	var req IsochroneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateLonLat(w, req.X, req.Y, "origin") {
		return
	}
	style, ok := parseStyle(req.Style)
	if !ok {
		writeError(w, http.StatusBadRequest, "unrecognized isochrone style")
		return
	}

	origin := orb.Point{req.X, req.Y}

	var fc any
	var err error
	h.mu.Lock()
	defer h.mu.Unlock()
	if req.Settings2 != nil {
		s2 := req.Settings2.toSettings()
		fc, err = h.model.CalculateIsochrone(origin, style, req.BudgetMinutes, req.Settings1.toSettings(), ptr.Of(s2))
	} else {
		fc, err = h.model.CalculateIsochrone(origin, style, req.BudgetMinutes, req.Settings1.toSettings(), nil)
	}
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// HandleRender handles GET /api/v1/render.
func (h *Handlers) HandleRender(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.model.Render())
}

// HandleComponents handles GET /api/v1/components.
func (h *Handlers) HandleComponents(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.model.FindConnectedComponents())
}

// HandleDetourScores handles POST /api/v1/detour-scores.
func (h *Handlers) HandleDetourScores(w http.ResponseWriter, r *http.Request) {
	var req DetourScoresRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	fc, err := h.model.CalculateDetourScores(r.Context(), req.Settings.toSettings())
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// HandleCrossingDistances handles POST /api/v1/crossing-distances.
func (h *Handlers) HandleCrossingDistances(w http.ResponseWriter, r *http.Request) {
	var req CrossingDistancesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	kinds := make([]classify.CrossingKind, 0, len(req.IncludeKinds))
	for _, k := range req.IncludeKinds {
		ck, ok := parseCrossingKind(k)
		if !ok {
			writeError(w, http.StatusBadRequest, "unrecognized crossing kind: "+k)
			return
		}
		kinds = append(kinds, ck)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.model.GetCrossingDistances(kinds))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "Content-Type must be application/json")
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func validateLonLat(w http.ResponseWriter, lon, lat float64, field string) bool {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		writeError(w, http.StatusBadRequest, field+" coordinate must be finite")
		return false
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, field+" coordinate out of range")
		return false
	}
	return true
}

func parseStyle(s string) (isochrone.Style, bool) {
	switch s {
	case "roads":
		return isochrone.Roads, true
	case "dasymetric":
		return isochrone.Dasymetric, true
	case "grid":
		return isochrone.Grid, true
	case "contours":
		return isochrone.Contours, true
	default:
		return 0, false
	}
}

func parseCrossingKind(s string) (classify.CrossingKind, bool) {
	switch s {
	case "signalized":
		return classify.Signalized, true
	case "zebra":
		return classify.Zebra, true
	case "other":
		return classify.Other, true
	default:
		return 0, false
	}
}

// writeModelError maps a *severr.Error to the HTTP status the error
// handling design assigns it; any other error (a programmer-error
// invariant violation) is a 500.
func writeModelError(w http.ResponseWriter, err error) {
	var se *severr.Error
	if !errors.As(err, &se) {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	switch se.Kind {
	case severr.NotSnappable:
		writeError(w, http.StatusUnprocessableEntity, se.Error())
	case severr.NoPath:
		writeError(w, http.StatusNotFound, se.Error())
	case severr.DegenerateInput, severr.UnknownProfile, severr.InputMalformed, severr.EmptyArea:
		writeError(w, http.StatusBadRequest, se.Error())
	default:
		writeError(w, http.StatusInternalServerError, se.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
