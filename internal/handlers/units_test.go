package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
)

func TestUnitsListsVocabulary(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Units(w, httptest.NewRequest(http.MethodGet, "/api/units", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var families []unitFamilyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &families); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(families) != 2 || families[0].Canonical != units.Gram || families[1].Canonical != units.Milliliter {
		t.Fatalf("unexpected families: %+v", families)
	}
	if got := len(families[0].Units) + len(families[1].Units); got != len(units.All()) {
		t.Fatalf("expected %d units, got %d", len(units.All()), got)
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
		want   float64
	}{
		{"mass", `{"value": 1, "from": "lb", "to": "g"}`, http.StatusOK, 453.59237},
		{"volume", `{"value": 500, "from": "ml", "to": "l"}`, http.StatusOK, 0.5},
		{"density", `{"value": 100, "from": "ml", "to": "g", "density": 0.9}`, http.StatusOK, 90},
		{"unknown unit", `{"value": 1, "from": "piece", "to": "g"}`, http.StatusUnprocessableEntity, 0},
		{"malformed", `{"value": "one"}`, http.StatusBadRequest, 0},
		{"unknown field", `{"value": 1, "from": "g", "to": "g", "extra": true}`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			Convert(w, httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(tt.body)))
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var got units.Quantity
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if math.Abs(got.Value-tt.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got.Value)
			}
		})
	}
}

func TestConvertRejectsGet(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Convert(w, httptest.NewRequest(http.MethodGet, "/api/convert", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestScaleReturnsDualServing(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(scaleRequest{Item: oatsItem(), Quantity: 80, Unit: "g"})
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}

	w := httptest.NewRecorder()
	Scale(w, httptest.NewRequest(http.MethodPost, "/api/scale", strings.NewReader(string(payload))))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got nutrition.FoodItem
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Nutrients.Calories != 300 || got.Serving.Quantity != 80 {
		t.Fatalf("unexpected scaled item: %+v", got)
	}
	if got.ServingImperial == nil || got.ServingImperial.Unit != units.Ounce {
		t.Fatalf("expected imperial serving in ounces, got %+v", got.ServingImperial)
	}
}

func TestScaleMapsDomainErrors(t *testing.T) {
	t.Parallel()

	broken := oatsItem()
	broken.Serving.Quantity = 0

	tests := []struct {
		name string
		req  scaleRequest
	}{
		{"unknown unit", scaleRequest{Item: oatsItem(), Quantity: 1, Unit: "slice"}},
		{"invalid original serving", scaleRequest{Item: broken, Quantity: 1, Unit: "g"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			payload, err := json.Marshal(tt.req)
			if err != nil {
				t.Fatalf("encode payload: %v", err)
			}
			w := httptest.NewRecorder()
			Scale(w, httptest.NewRequest(http.MethodPost, "/api/scale", strings.NewReader(string(payload))))
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Fatalf("expected json error body, got %s", w.Body.String())
			}
		})
	}
}
