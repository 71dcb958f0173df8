// Package workspace persists curated food items as pages in a user's
// workspace database.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/models"
)

const (
	DefaultDecimals = 2
	DefaultPageSize = 100
	MaxPageSize     = 100
)

var (
	// ErrNotFound is returned when a page does not exist for the owner.
	ErrNotFound = errors.New("workspace: page not found")
	// ErrInvalidItem reports an item that cannot be written to the workspace.
	ErrInvalidItem = errors.New("workspace: invalid food item")
)

// Store reads and writes saved foods.
type Store struct {
	db       *gorm.DB
	decimals int
}

// NewStore builds a Store. Values are rounded to decimals places when written;
// a negative value selects DefaultDecimals.
func NewStore(db *gorm.DB, decimals int) *Store {
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	return &Store{db: db, decimals: decimals}
}

// Page is one slice of a cursor-paginated query.
type Page struct {
	Results    []models.SavedFood `json:"results"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
}

// Create stores item as a new page owned by ownerID.
func (s *Store) Create(ctx context.Context, ownerID uint, item nutrition.FoodItem) (models.SavedFood, error) {
	if err := s.ready(); err != nil {
		return models.SavedFood{}, err
	}
	record, err := s.project(item)
	if err != nil {
		return models.SavedFood{}, err
	}
	record.PageID = uuid.NewString()
	record.OwnerID = ownerID

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		applog.Error(ctx, "failed to create workspace page", "error", err, "fdcId", item.FDCID)
		return models.SavedFood{}, fmt.Errorf("workspace: create page: %w", err)
	}
	applog.Debug(ctx, "workspace page created", "pageId", record.PageID, "fdcId", record.FDCID)
	return record, nil
}

// Update replaces the serving and nutrients of an existing page.
func (s *Store) Update(ctx context.Context, ownerID uint, pageID string, item nutrition.FoodItem) (models.SavedFood, error) {
	existing, err := s.Get(ctx, ownerID, pageID)
	if err != nil {
		return models.SavedFood{}, err
	}
	record, err := s.project(item)
	if err != nil {
		return models.SavedFood{}, err
	}

	columns := []string{
		"Description", "Brand", "FoodCategory", "FoodGroup", "DataType", "Ingredients",
		"ServingQuantity", "ServingUnit", "ServingLabel", "Nutrients",
	}
	if record.FDCID != 0 {
		columns = append(columns, "FDCID")
	}

	err = s.db.WithContext(ctx).Model(&existing).Select(columns).Updates(&record).Error
	if err != nil {
		applog.Error(ctx, "failed to update workspace page", "error", err, "pageId", pageID)
		return models.SavedFood{}, fmt.Errorf("workspace: update page: %w", err)
	}
	applog.Debug(ctx, "workspace page updated", "pageId", pageID)
	return s.Get(ctx, ownerID, pageID)
}

// Get loads a single page owned by ownerID.
func (s *Store) Get(ctx context.Context, ownerID uint, pageID string) (models.SavedFood, error) {
	if err := s.ready(); err != nil {
		return models.SavedFood{}, err
	}
	var record models.SavedFood
	err := s.db.WithContext(ctx).
		Where("page_id = ? AND owner_id = ?", strings.TrimSpace(pageID), ownerID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SavedFood{}, ErrNotFound
		}
		return models.SavedFood{}, fmt.Errorf("workspace: load page: %w", err)
	}
	return record, nil
}

// Delete archives a page.
func (s *Store) Delete(ctx context.Context, ownerID uint, pageID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).
		Where("page_id = ? AND owner_id = ?", strings.TrimSpace(pageID), ownerID).
		Delete(&models.SavedFood{})
	if result.Error != nil {
		return fmt.Errorf("workspace: delete page: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	applog.Debug(ctx, "workspace page deleted", "pageId", pageID)
	return nil
}

// Query returns up to pageSize pages ordered by creation, starting after
// cursor. The cursor is the page ID of the last result of the previous call.
func (s *Store) Query(ctx context.Context, ownerID uint, cursor string, pageSize int) (Page, error) {
	if err := s.ready(); err != nil {
		return Page{}, err
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id asc")
	if cursor = strings.TrimSpace(cursor); cursor != "" {
		anchor, err := s.Get(ctx, ownerID, cursor)
		if err != nil {
			return Page{}, fmt.Errorf("workspace: resolve cursor: %w", err)
		}
		query = query.Where("id > ?", anchor.ID)
	}

	var results []models.SavedFood
	if err := query.Limit(pageSize + 1).Find(&results).Error; err != nil {
		return Page{}, fmt.Errorf("workspace: query pages: %w", err)
	}

	page := Page{Results: results}
	if len(results) > pageSize {
		page.Results = results[:pageSize]
		page.HasMore = true
		page.NextCursor = page.Results[pageSize-1].PageID
	}
	return page, nil
}

// All walks every page of the owner's workspace.
func (s *Store) All(ctx context.Context, ownerID uint) ([]models.SavedFood, error) {
	var all []models.SavedFood
	cursor := ""
	for {
		page, err := s.Query(ctx, ownerID, cursor, MaxPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if !page.HasMore {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// FDCIDs returns the FoodData Central IDs already saved by the owner.
func (s *Store) FDCIDs(ctx context.Context, ownerID uint) ([]int, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var ids []int
	err := s.db.WithContext(ctx).
		Model(&models.SavedFood{}).
		Where("owner_id = ? AND fdc_id <> 0", ownerID).
		Distinct().
		Order("fdc_id asc").
		Pluck("fdc_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("workspace: list fdc ids: %w", err)
	}
	return ids, nil
}

// ToFoodItem rebuilds a food item from a stored page. When the stored unit is
// outside the vocabulary the item is still returned, carrying the raw unit,
// together with the parse error.
func ToFoodItem(record models.SavedFood) (nutrition.FoodItem, error) {
	item := nutrition.FoodItem{
		FDCID:        record.FDCID,
		Description:  record.Description,
		BrandOwner:   record.Brand,
		DataType:     record.DataType,
		FoodCategory: record.FoodCategory,
		Ingredients:  record.Ingredients,
		Serving: nutrition.ServingSpec{
			Quantity: record.ServingQuantity,
			Unit:     units.Unit(record.ServingUnit),
			Label:    record.ServingLabel,
		},
		Nutrients: record.Nutrients,
	}
	unit, err := units.Parse(record.ServingUnit)
	if err != nil {
		return item, err
	}
	item.Serving.Unit = unit
	return item, nil
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	return nil
}

func (s *Store) project(item nutrition.FoodItem) (models.SavedFood, error) {
	description := strings.TrimSpace(item.Description)
	if description == "" {
		return models.SavedFood{}, fmt.Errorf("%w: description is required", ErrInvalidItem)
	}
	unit, err := units.Parse(string(item.Serving.Unit))
	if err != nil {
		return models.SavedFood{}, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	quantity := Round(item.Serving.Quantity, s.decimals)
	if quantity <= 0 {
		return models.SavedFood{}, fmt.Errorf("%w: serving quantity must be greater than zero", ErrInvalidItem)
	}

	brand := strings.TrimSpace(item.BrandName)
	if brand == "" {
		brand = strings.TrimSpace(item.BrandOwner)
	}

	return models.SavedFood{
		FDCID:           item.FDCID,
		Description:     description,
		Brand:           brand,
		FoodCategory:    strings.TrimSpace(item.FoodCategory),
		FoodGroup:       FoodGroup(item.FoodCategory),
		DataType:        strings.TrimSpace(item.DataType),
		Ingredients:     strings.TrimSpace(item.Ingredients),
		ServingQuantity: quantity,
		ServingUnit:     string(unit),
		ServingLabel:    strings.TrimSpace(item.Serving.Label),
		Nutrients:       RoundRecord(item.Nutrients, s.decimals),
	}, nil
}

// Round rounds value half away from zero to the given number of decimals.
func Round(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(value*pow) / pow
}

// RoundRecord rounds every nutrient for storage.
func RoundRecord(r nutrition.Record, decimals int) nutrition.Record {
	return r.Map(func(v float64) float64 { return Round(v, decimals) })
}
