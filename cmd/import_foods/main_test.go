package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ledongthuc/pdf"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nutrisync/internal/units"
	"nutrisync/models"
)

func TestBuildFoodItem(t *testing.T) {
	t.Parallel()

	item, err := buildFoodItem(map[string]string{
		"description":           " Greek   yogurt ",
		"quantity":              "170",
		"unit":                  "G",
		"label":                 "1 container",
		"calories":              "100 kcal",
		"protein":               "17",
		"carbs":                 "6",
		"fat":                   "0.7",
		"micronutrients.sodium": "65",
		"notes":                 "plain",
	})
	if err != nil {
		t.Fatalf("buildFoodItem returned error: %v", err)
	}
	if item.Description != "Greek yogurt" || item.Serving.Unit != units.Gram || item.Serving.Quantity != 170 {
		t.Fatalf("unexpected item: %+v", item)
	}
	got := []float64{
		item.Nutrients.Calories,
		item.Nutrients.Protein,
		item.Nutrients.Carbs.Total,
		item.Nutrients.Fats.Total,
		item.Nutrients.Micronutrients.Sodium,
	}
	if diff := cmp.Diff([]float64{100, 17, 6, 0.7, 65}, got); diff != "" {
		t.Fatalf("nutrient mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFoodItemRejectsRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record map[string]string
	}{
		{"missing description", map[string]string{"quantity": "1", "unit": "g"}},
		{"unknown unit", map[string]string{"description": "Bread", "quantity": "1", "unit": "slice"}},
		{"zero quantity", map[string]string{"description": "Bread", "quantity": "0", "unit": "g"}},
		{"negative nutrient", map[string]string{"description": "Bread", "quantity": "30", "unit": "g", "fat": "-1"}},
	}
	for _, tt := range tests {
		if _, err := buildFoodItem(tt.record); !errors.Is(err, errRejectedRow) {
			t.Fatalf("%s: expected rejected row, got %v", tt.name, err)
		}
	}
}

func TestRecordsFromRowsFindsHeader(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Weekly pantry"},
		{"Description", "Quantity", "Unit", "Calories (kcal)"},
		{"Oats", "40", "g", "150"},
		{"", "", "", ""},
		{"Milk", "1", "cup"},
	}
	records, err := recordsFromRows(rows)
	if err != nil {
		t.Fatalf("recordsFromRows returned error: %v", err)
	}
	want := []map[string]string{
		{"description": "Oats", "quantity": "40", "unit": "g", "calories": "150"},
		{"description": "Milk", "quantity": "1", "unit": "cup"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	if _, err := recordsFromRows([][]string{{"name", "qty"}}); err == nil {
		t.Fatal("expected an error without a description column")
	}
}

func TestGroupTextsIntoRowsSplitsCells(t *testing.T) {
	t.Parallel()

	texts := []pdf.Text{
		{X: 200, Y: 700, W: 10, S: "g"},
		{X: 10, Y: 700, W: 20, S: "Rolled"},
		{X: 33, Y: 700.5, W: 20, S: "oats"},
		{X: 150, Y: 700, W: 10, S: "40"},
		{X: 10, Y: 720, W: 60, S: "Description"},
		{X: 150, Y: 720, W: 40, S: "Quantity"},
		{X: 200, Y: 720, W: 20, S: "Unit"},
	}
	rows := groupTextsIntoRows(texts)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	var cells [][]string
	for _, row := range rows {
		cells = append(cells, row.cells())
	}
	want := [][]string{
		{"Description", "Quantity", "Unit"},
		{"Rolled oats", "40", "g"},
	}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestImportFileUpsertsFoods(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:import-foods?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&models.User{}, &models.SavedFood{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	owner := models.User{Email: "Owner@example.com", PasswordHash: "x"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	t.Setenv(ownerEmailEnv, "owner@example.com")

	path := filepath.Join(t.TempDir(), "foods.csv")
	content := "description,quantity,unit,calories,protein,carbs,fat\n" +
		"Oats,40,g,150,5,27,2.5\n" +
		"Toast,1,slice,80,3,15,1\n" +
		"oats,80,g,300,10,54,5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	summary, err := importFile(context.Background(), db, path, 2)
	if err != nil {
		t.Fatalf("importFile returned error: %v", err)
	}
	if diff := cmp.Diff(importSummary{created: 1, updated: 1, rejected: 1}, summary, cmp.AllowUnexported(importSummary{})); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	var foods []models.SavedFood
	if err := db.Where("owner_id = ?", owner.ID).Find(&foods).Error; err != nil {
		t.Fatalf("load foods: %v", err)
	}
	if len(foods) != 1 {
		t.Fatalf("expected a single upserted food, got %d", len(foods))
	}
	if foods[0].ServingQuantity != 80 || foods[0].Nutrients.Calories != 300 {
		t.Fatalf("expected the later row to win, got %+v", foods[0])
	}
}

func TestResolveImportOwnerDefaultsToFirstUser(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:import-owner?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Setenv(ownerEmailEnv, "")

	if _, err := resolveImportOwner(context.Background(), db); err == nil {
		t.Fatal("expected an error without users")
	}

	first := models.User{Email: "first@example.com", PasswordHash: "x"}
	second := models.User{Email: "second@example.com", PasswordHash: "x"}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("seed first user: %v", err)
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("seed second user: %v", err)
	}
	id, err := resolveImportOwner(context.Background(), db)
	if err != nil {
		t.Fatalf("resolveImportOwner returned error: %v", err)
	}
	if id != first.ID {
		t.Fatalf("expected first user %d, got %d", first.ID, id)
	}
}
