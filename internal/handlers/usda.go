package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/internal/usda"
)

const (
	sessionRecentQueriesKey = "usda:recent"
	maxRecentQueries        = 10
)

// FoodSource looks foods up in FoodData Central.
type FoodSource interface {
	Search(ctx context.Context, query string, opts usda.SearchOptions) (usda.SearchResponse, error)
	FoodDetails(ctx context.Context, fdcID int) (usda.FoodDetails, error)
}

var foodSource FoodSource

// ConfigureUSDA installs the FoodData Central client used by the lookup routes.
func ConfigureUSDA(source FoodSource) {
	foodSource = source
}

// USDASearch proxies a food search to FoodData Central.
func USDASearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if foodSource == nil {
		applog.Debug(r.Context(), "usda search without configured client")
		writeJSONError(w, http.StatusServiceUnavailable, "food lookup not configured")
		return
	}

	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("query"))
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "query is required")
		return
	}

	opts := usda.SearchOptions{}
	if dataTypes := strings.TrimSpace(q.Get("dataTypes")); dataTypes != "" {
		opts.DataTypes = strings.Split(dataTypes, ",")
	}
	if raw := q.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			writeJSONError(w, http.StatusBadRequest, "pageSize must be a positive integer")
			return
		}
		opts.PageSize = size
	}
	if raw := q.Get("pageNumber"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page <= 0 {
			writeJSONError(w, http.StatusBadRequest, "pageNumber must be a positive integer")
			return
		}
		opts.PageNumber = page
	}

	resp, err := foodSource.Search(r.Context(), query, opts)
	if err != nil {
		writeDomainError(w, r, err, "food search failed")
		return
	}
	rememberQuery(r, query)
	writeJSON(w, http.StatusOK, resp)
}

// USDAFood fetches a single food, processes it into a food item and, when a
// quantity and unit are supplied, scales it to that serving.
func USDAFood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if foodSource == nil {
		applog.Debug(r.Context(), "usda lookup without configured client")
		writeJSONError(w, http.StatusServiceUnavailable, "food lookup not configured")
		return
	}

	identifier := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/usda/food"), "/")
	fdcID, err := strconv.Atoi(identifier)
	if err != nil || fdcID <= 0 {
		applog.Debug(r.Context(), "invalid fdc identifier", "identifier", identifier)
		http.NotFound(w, r)
		return
	}

	details, err := foodSource.FoodDetails(r.Context(), fdcID)
	if err != nil {
		writeDomainError(w, r, err, "food lookup failed")
		return
	}
	item := usda.Process(details)

	q := r.URL.Query()
	if rawQty, rawUnit := q.Get("quantity"), q.Get("unit"); rawQty != "" || rawUnit != "" {
		quantity, err := strconv.ParseFloat(rawQty, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "quantity must be a number")
			return
		}
		unit, err := units.Parse(rawUnit)
		if err != nil {
			writeDomainError(w, r, err, "unable to scale")
			return
		}
		density := units.DefaultDensity
		if rawDensity := q.Get("density"); rawDensity != "" {
			if density, err = strconv.ParseFloat(rawDensity, 64); err != nil {
				writeJSONError(w, http.StatusBadRequest, "density must be a number")
				return
			}
		}
		if item, err = nutrition.Scale(item, quantity, unit, density); err != nil {
			writeDomainError(w, r, err, "unable to scale")
			return
		}
	}

	writeJSON(w, http.StatusOK, nutrition.WithDualServing(item))
}

// RecentQueries returns the searches remembered for the current session.
func RecentQueries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"queries": recentQueries(r)})
}

func recentQueries(r *http.Request) []string {
	if sessionManager == nil {
		return []string{}
	}
	queries, ok := sessionManager.Get(r.Context(), sessionRecentQueriesKey).([]string)
	if !ok {
		return []string{}
	}
	return queries
}

// rememberQuery records query as the most recent search, dropping duplicates
// and keeping at most maxRecentQueries entries.
func rememberQuery(r *http.Request, query string) {
	if sessionManager == nil {
		return
	}
	previous := recentQueries(r)
	updated := make([]string, 0, maxRecentQueries)
	updated = append(updated, query)
	for _, existing := range previous {
		if len(updated) == maxRecentQueries {
			break
		}
		if strings.EqualFold(existing, query) {
			continue
		}
		updated = append(updated, existing)
	}
	sessionManager.Put(r.Context(), sessionRecentQueriesKey, updated)
}
