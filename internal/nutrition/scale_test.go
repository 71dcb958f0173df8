package nutrition

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"nutrisync/internal/units"
)

func sampleRecord() Record {
	var r Record
	for i, leaf := range r.Leaves() {
		r.Set(leaf.Path, float64(i+1)*1.5)
	}
	return r
}

func sampleItem() FoodItem {
	return FoodItem{
		FDCID:        171705,
		Description:  "Milk, whole",
		FoodCategory: "Dairy and Egg Products",
		Serving:      ServingSpec{Quantity: 100, Unit: units.Gram, Label: "1 glass"},
		Nutrients:    sampleRecord(),
	}
}

func TestScaleSameServingReturnsEqualItem(t *testing.T) {
	t.Parallel()

	item := sampleItem()
	got, err := Scale(item, item.Serving.Quantity, item.Serving.Unit, units.DefaultDensity)
	if err != nil {
		t.Fatalf("Scale returned error: %v", err)
	}
	if diff := cmp.Diff(item, got); diff != "" {
		t.Fatalf("unexpected difference (-want +got):\n%s", diff)
	}
}

func TestScaleDoublingDoublesEveryLeaf(t *testing.T) {
	t.Parallel()

	item := sampleItem()
	got, err := Scale(item, 200, units.Gram, units.DefaultDensity)
	if err != nil {
		t.Fatalf("Scale returned error: %v", err)
	}

	before := item.Nutrients.Leaves()
	after := got.Nutrients.Leaves()
	for i := range before {
		if after[i].Value != before[i].Value*2 {
			t.Fatalf("%s = %v, want %v", after[i].Path, after[i].Value, before[i].Value*2)
		}
	}
	if got.Serving.Quantity != 200 || got.Serving.Unit != units.Gram {
		t.Fatalf("unexpected serving %+v", got.Serving)
	}
	if got.Serving.Label != "1 glass" {
		t.Fatalf("expected serving label to be carried through, got %q", got.Serving.Label)
	}
}

func TestScaleAcrossUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		serving ServingSpec
		qty     float64
		unit    units.Unit
		density float64
		ratio   float64
	}{
		{"grams to ounces", ServingSpec{Quantity: 100, Unit: units.Gram}, 1, units.Ounce, 0, 0.283495231},
		{"kilogram to grams", ServingSpec{Quantity: 1, Unit: units.Kilogram}, 250, units.Gram, 0, 0.25},
		{"cup to tablespoons", ServingSpec{Quantity: 1, Unit: units.Cup}, 2, units.Tablespoon, 0, 2 * 14.7868 / 236.588},
		{"grams to millilitres assumes water", ServingSpec{Quantity: 100, Unit: units.Gram}, 50, units.Milliliter, 0, 0.5},
		{"grams to millilitres ignores density in canonical legs", ServingSpec{Quantity: 100, Unit: units.Gram}, 50, units.Milliliter, 1.03, 0.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Ratio(tt.serving, tt.qty, tt.unit, tt.density)
			if err != nil {
				t.Fatalf("Ratio returned error: %v", err)
			}
			if math.Abs(got-tt.ratio) > 1e-9 {
				t.Fatalf("Ratio = %v, want %v", got, tt.ratio)
			}
		})
	}
}

func TestScaleDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	item := WithDualServing(sampleItem())
	snapshot := item.clone()

	got, err := Scale(item, 30, units.Ounce, units.DefaultDensity)
	if err != nil {
		t.Fatalf("Scale returned error: %v", err)
	}
	got.Nutrients.Protein = 999

	if diff := cmp.Diff(snapshot, item); diff != "" {
		t.Fatalf("input changed (-before +after):\n%s", diff)
	}
	if got.Nutrients == item.Nutrients {
		t.Fatal("expected scaled nutrients to differ from the original")
	}
	if got.ServingMetric != nil || got.ServingImperial != nil {
		t.Fatal("expected stale dual serving values to be cleared on the scaled copy")
	}

	same, err := Scale(item, item.Serving.Quantity, item.Serving.Unit, units.DefaultDensity)
	if err != nil {
		t.Fatalf("Scale returned error: %v", err)
	}
	if same.ServingMetric == item.ServingMetric {
		t.Fatal("fast path must not share the dual serving pointers")
	}
}

func TestScalePreservesShape(t *testing.T) {
	t.Parallel()

	item := sampleItem()
	got, err := Scale(item, 3, units.Cup, 0.97)
	if err != nil {
		t.Fatalf("Scale returned error: %v", err)
	}

	wantKeys := jsonKeys(t, item.Nutrients)
	gotKeys := jsonKeys(t, got.Nutrients)
	if diff := cmp.Diff(wantKeys, gotKeys, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("shape changed (-want +got):\n%s", diff)
	}
}

func jsonKeys(t *testing.T, r Record) []string {
	t.Helper()
	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	var keys []string
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, v := range node {
			keys = append(keys, prefix+k)
			if child, ok := v.(map[string]any); ok {
				walk(prefix+k+".", child)
			}
		}
	}
	walk("", tree)
	sort.Strings(keys)
	return keys
}

func TestLeavesCoverEveryField(t *testing.T) {
	t.Parallel()

	want := countFloatFields(reflect.TypeOf(Record{}))
	if got := len(Record{}.Leaves()); got != want {
		t.Fatalf("Leaves() returned %d entries, record has %d numeric fields", got, want)
	}

	keys := jsonKeys(t, sampleRecord())
	leafPaths := map[string]bool{}
	for _, leaf := range sampleRecord().Leaves() {
		leafPaths[leaf.Path] = true
	}
	for _, k := range keys {
		if !leafPaths[k] && !isGroup(k) {
			t.Fatalf("json key %q has no matching leaf path", k)
		}
	}
}

func isGroup(key string) bool {
	switch key {
	case "carbs", "fats", "fats.omega3", "micronutrients", "vitamins", "aminoAcids":
		return true
	}
	return false
}

func countFloatFields(t reflect.Type) int {
	n := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		switch f.Type.Kind() {
		case reflect.Float64:
			n++
		case reflect.Struct:
			n += countFloatFields(f.Type)
		}
	}
	return n
}

func TestScaleErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		serving ServingSpec
		qty     float64
		unit    units.Unit
		wantErr error
	}{
		{"zero original quantity", ServingSpec{Quantity: 0, Unit: units.Gram}, 100, units.Gram, ErrInvalidServingSpecification},
		{"zero original quantity unchanged", ServingSpec{Quantity: 0, Unit: units.Gram}, 0, units.Gram, ErrInvalidServingSpecification},
		{"negative original quantity", ServingSpec{Quantity: -5, Unit: units.Cup}, 1, units.Cup, ErrInvalidServingSpecification},
		{"unknown original unit", ServingSpec{Quantity: 1, Unit: "piece"}, 100, units.Gram, ErrInvalidServingSpecification},
		{"unsupported target unit", ServingSpec{Quantity: 100, Unit: units.Gram}, 1, "slice", units.ErrUnsupportedConversion},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := sampleItem()
			item.Serving = tt.serving
			got, err := Scale(item, tt.qty, tt.unit, units.DefaultDensity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Scale error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(FoodItem{}, got); diff != "" {
				t.Fatalf("expected no partial result, got:\n%s", diff)
			}
		})
	}
}

func TestWithDualServing(t *testing.T) {
	t.Parallel()

	item := sampleItem()
	item.Serving = ServingSpec{Quantity: 2, Unit: units.Cup}
	got := WithDualServing(item)

	if got.ServingMetric == nil || got.ServingMetric.Unit != units.Milliliter {
		t.Fatalf("unexpected metric serving %+v", got.ServingMetric)
	}
	if math.Abs(got.ServingMetric.Value-473.176) > 1e-9 {
		t.Fatalf("metric serving = %v, want 473.176", got.ServingMetric.Value)
	}
	if got.ServingImperial == nil || *got.ServingImperial != (units.Quantity{Value: 2, Unit: units.Cup}) {
		t.Fatalf("expected imperial serving to pass through, got %+v", got.ServingImperial)
	}
	if item.ServingMetric != nil {
		t.Fatal("WithDualServing mutated its input")
	}
}

func TestRecordMapAndSet(t *testing.T) {
	t.Parallel()

	var r Record
	if !r.Set("fats.omega3.dha", 0.5) {
		t.Fatal("expected known path to be set")
	}
	if r.Set("fats.omega6", 1) {
		t.Fatal("expected unknown path to be rejected")
	}
	mapped := r.Map(func(v float64) float64 { return v + 1 })
	if mapped.Fats.Omega3.DHA != 1.5 || mapped.Calories != 1 {
		t.Fatalf("unexpected mapped record %+v", mapped)
	}
	if r.Calories != 0 {
		t.Fatal("Map mutated the receiver")
	}
}
