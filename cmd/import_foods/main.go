package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"nutrisync/internal/config"
	"nutrisync/internal/db"
	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/internal/workspace"
	"nutrisync/models"
)

const ownerEmailEnv = "NUTRISYNC_IMPORT_OWNER_EMAIL"

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// nutrientColumns maps friendly column headers onto record paths. Headers
// that already are dotted record paths are used as is.
var nutrientColumns = map[string]string{
	"calories":      "calories",
	"kcal":          "calories",
	"energy":        "calories",
	"protein":       "protein",
	"carbs":         "carbs.total",
	"carbohydrates": "carbs.total",
	"fiber":         "carbs.fiber",
	"sugar":         "carbs.sugar",
	"sugars":        "carbs.sugar",
	"fat":           "fats.total",
	"saturated fat": "fats.saturated",
	"cholesterol":   "cholesterol",
	"sodium":        "micronutrients.sodium",
	"potassium":     "micronutrients.potassium",
	"calcium":       "micronutrients.calcium",
	"iron":          "micronutrients.iron",
}

var errRejectedRow = errors.New("row rejected")

func main() {
	path := "foods.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("input path must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate input: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	summary, err := importFile(context.Background(), database, path, cfg.Workspace.Decimals)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d foods (%d updated, %d rejected) from %s\n",
		summary.created+summary.updated, summary.updated, summary.rejected, filepath.Base(path))
	return nil
}

type importSummary struct {
	created  int
	updated  int
	rejected int
}

func importFile(ctx context.Context, database *gorm.DB, path string, decimals int) (importSummary, error) {
	records, err := readRecords(path)
	if err != nil {
		return importSummary{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	ownerID, err := resolveImportOwner(ctx, database)
	if err != nil {
		return importSummary{}, fmt.Errorf("resolve owner: %w", err)
	}

	var summary importSummary
	for idx, record := range records {
		item, err := buildFoodItem(record)
		if err != nil {
			applog.Warn(ctx, "skipping food row", "row", idx+1, "error", err)
			summary.rejected++
			continue
		}

		created := false
		err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			store := workspace.NewStore(tx, decimals)

			var existing models.SavedFood
			err := tx.Where("owner_id = ? AND lower(description) = ?", ownerID, strings.ToLower(item.Description)).
				First(&existing).Error
			switch {
			case err == nil:
				_, err = store.Update(ctx, ownerID, existing.PageID, item)
				return err
			case errors.Is(err, gorm.ErrRecordNotFound):
				created = true
				_, err = store.Create(ctx, ownerID, item)
				return err
			default:
				return fmt.Errorf("find food %q: %w", item.Description, err)
			}
		})
		if err != nil {
			return summary, fmt.Errorf("row %d (%s): %w", idx+1, item.Description, err)
		}
		if created {
			summary.created++
		} else {
			summary.updated++
		}
	}
	return summary, nil
}

func resolveImportOwner(ctx context.Context, db *gorm.DB) (uint, error) {
	if db == nil {
		return 0, fmt.Errorf("database handle is nil")
	}

	email := strings.TrimSpace(os.Getenv(ownerEmailEnv))
	if email != "" {
		var user models.User
		if err := db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
			return 0, fmt.Errorf("find owner by email %q: %w", strings.ToLower(email), err)
		}
		return user.ID, nil
	}

	var user models.User
	if err := db.WithContext(ctx).Order("id asc").First(&user).Error; err != nil {
		return 0, fmt.Errorf("find default owner: %w", err)
	}
	return user.ID, nil
}

func readRecords(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return recordsFromRows(rows)
}

// recordsFromRows turns a header row plus data rows into records keyed by the
// normalized header.
func recordsFromRows(rows [][]string) ([]map[string]string, error) {
	start := -1
	for idx, row := range rows {
		for _, cell := range row {
			if normalizeHeader(cell) == "description" {
				start = idx
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil, errors.New("no header row with a description column")
	}

	header := make([]string, len(rows[start]))
	for idx, cell := range rows[start] {
		header[idx] = normalizeHeader(cell)
	}

	records := make([]map[string]string, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if len(row) == 0 {
			continue
		}
		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) || key == "" {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		if record["description"] == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func normalizeHeader(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if open := strings.Index(value, "("); open > 0 {
		value = value[:open]
	}
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}

// buildFoodItem validates one row. The serving unit must be part of the unit
// vocabulary and the quantity must be positive.
func buildFoodItem(record map[string]string) (nutrition.FoodItem, error) {
	description := cleanWhitespace.ReplaceAllString(strings.TrimSpace(record["description"]), " ")
	if description == "" {
		return nutrition.FoodItem{}, fmt.Errorf("%w: description is required", errRejectedRow)
	}

	quantity, ok := parseFirstNumber(record["quantity"])
	if !ok || quantity <= 0 {
		return nutrition.FoodItem{}, fmt.Errorf("%w: %q has no positive quantity", errRejectedRow, description)
	}
	unit, err := units.Parse(record["unit"])
	if err != nil {
		return nutrition.FoodItem{}, fmt.Errorf("%w: %q: %w", errRejectedRow, description, err)
	}

	item := nutrition.FoodItem{
		Description: description,
		BrandName:   strings.TrimSpace(record["brand"]),
		Serving: nutrition.ServingSpec{
			Quantity: quantity,
			Unit:     unit,
			Label:    strings.TrimSpace(record["label"]),
		},
	}
	if raw := strings.TrimSpace(firstNonEmpty(record["fdc id"], record["fdc_id"], record["fdcid"])); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			item.FDCID = id
		}
	}

	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		path, known := nutrientColumns[key]
		if !known && strings.Contains(key, ".") {
			path = key
		}
		if path == "" {
			continue
		}
		value, ok := parseFirstNumber(record[key])
		if !ok {
			continue
		}
		if value < 0 {
			return nutrition.FoodItem{}, fmt.Errorf("%w: %q has a negative %s", errRejectedRow, description, key)
		}
		if !item.Nutrients.Set(path, value) {
			applog.Debug(context.Background(), "ignoring unknown nutrient column", "column", key)
		}
	}
	return item, nil
}

func parseFirstNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return 0, false
	}
	match := numberPattern.FindString(strings.ReplaceAll(value, ",", ""))
	if match == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func readPDF(path string) ([]map[string]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, line := range groupTextsIntoRows(p.Content().Text) {
			rows = append(rows, line.cells())
		}
	}
	if len(rows) == 0 {
		return nil, errors.New("pdf has no text")
	}
	return recordsFromRows(rows)
}

const (
	rowTolerance = 2.0

	// columnGap is the horizontal distance, in points, that separates two
	// table cells rather than two words of one cell.
	columnGap = 8.0
)

type textRow struct {
	y     float64
	texts []pdf.Text
}

// groupTextsIntoRows clusters text runs sharing a baseline, top of the page
// first.
func groupTextsIntoRows(texts []pdf.Text) []textRow {
	var rows []textRow
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].texts = append(rows[i].texts, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, texts: []pdf.Text{t}})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	return rows
}

// cells joins the runs of a row left to right. Runs closer than columnGap are
// part of the same cell.
func (r textRow) cells() []string {
	texts := append([]pdf.Text(nil), r.texts...)
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var cells []string
	var current strings.Builder
	end := 0.0
	for idx, t := range texts {
		if idx > 0 {
			gap := t.X - end
			switch {
			case gap > columnGap:
				cells = append(cells, strings.TrimSpace(current.String()))
				current.Reset()
			case gap > 1:
				current.WriteByte(' ')
			}
		}
		current.WriteString(t.S)
		end = t.X + t.W
	}
	cells = append(cells, strings.TrimSpace(current.String()))
	return cells
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
