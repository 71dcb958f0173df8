package handlers

import (
	"net/http"

	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
)

type unitResponse struct {
	ID     units.Unit   `json:"id"`
	Label  string       `json:"label"`
	Family units.Family `json:"family"`
}

type unitFamilyResponse struct {
	Family    units.Family   `json:"family"`
	Canonical units.Unit     `json:"canonical"`
	Units     []unitResponse `json:"units"`
}

type convertRequest struct {
	Value   float64  `json:"value"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Density *float64 `json:"density,omitempty"`
}

type scaleRequest struct {
	Item     nutrition.FoodItem `json:"item"`
	Quantity float64            `json:"quantity"`
	Unit     string             `json:"unit"`
	Density  *float64           `json:"density,omitempty"`
}

func densityOrDefault(value *float64) float64 {
	if value == nil || *value <= 0 {
		return units.DefaultDensity
	}
	return *value
}

func unitFamilies() []unitFamilyResponse {
	families := []struct {
		family    units.Family
		canonical units.Unit
		members   []units.Unit
	}{
		{units.Mass, units.Gram, units.MassUnits()},
		{units.Volume, units.Milliliter, units.VolumeUnits()},
	}

	out := make([]unitFamilyResponse, 0, len(families))
	for _, f := range families {
		entry := unitFamilyResponse{Family: f.family, Canonical: f.canonical}
		for _, u := range f.members {
			entry.Units = append(entry.Units, unitResponse{ID: u, Label: u.Label(), Family: u.Family()})
		}
		out = append(out, entry)
	}
	return out
}

// Units lists the supported unit vocabulary grouped by family.
func Units(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, unitFamilies())
}

// Convert converts a single amount between two units.
func Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload convertRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid convert payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	from, err := units.Parse(payload.From)
	if err != nil {
		writeDomainError(w, r, err, "unable to convert")
		return
	}
	to, err := units.Parse(payload.To)
	if err != nil {
		writeDomainError(w, r, err, "unable to convert")
		return
	}

	value, err := units.Convert(payload.Value, from, to, densityOrDefault(payload.Density))
	if err != nil {
		writeDomainError(w, r, err, "unable to convert")
		return
	}
	applog.Debug(r.Context(), "converted quantity", "from", from, "to", to)
	writeJSON(w, http.StatusOK, units.Quantity{Value: value, Unit: to})
}

// Scale rescales a food item to a new serving and returns it with its metric
// and imperial serving equivalents.
func Scale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload scaleRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid scale payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	unit, err := units.Parse(payload.Unit)
	if err != nil {
		writeDomainError(w, r, err, "unable to scale")
		return
	}

	scaled, err := nutrition.Scale(payload.Item, payload.Quantity, unit, densityOrDefault(payload.Density))
	if err != nil {
		writeDomainError(w, r, err, "unable to scale")
		return
	}
	applog.Debug(r.Context(), "scaled food item", "fdcId", scaled.FDCID, "quantity", payload.Quantity, "unit", unit)
	writeJSON(w, http.StatusOK, nutrition.WithDualServing(scaled))
}
