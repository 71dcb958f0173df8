package mock

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/internal/workspace"
	"nutrisync/models"
)

const (
	// DemoEmail and DemoPassword sign in to the seeded account.
	DemoEmail    = "demo@nutrisync.app"
	DemoPassword = "nutrients"
)

// New returns an in-memory sqlite database seeded with a demo account and a
// few saved foods.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:nutrisync-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.SavedFood{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", DemoEmail).First(&existing).Error
	if err == nil {
		applog.Debug(ctx, "mock database already seeded")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:          "Dana Demo",
		Email:         DemoEmail,
		PasswordHash:  string(password),
		DisplaySystem: models.DisplayBoth,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	store := workspace.NewStore(db, workspace.DefaultDecimals)
	for _, item := range seedFoods() {
		if _, err := store.Create(ctx, user.ID, item); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}

func seedFoods() []nutrition.FoodItem {
	oats := nutrition.FoodItem{
		FDCID:        173904,
		Description:  "Oats, rolled, dry",
		DataType:     "Foundation",
		FoodCategory: "Cereal Grains and Pasta",
		Serving:      nutrition.ServingSpec{Quantity: 100, Unit: units.Gram},
	}
	oats.Nutrients.Calories = 379
	oats.Nutrients.Protein = 13.15
	oats.Nutrients.Carbs.Total = 67.7
	oats.Nutrients.Carbs.Fiber = 10.1
	oats.Nutrients.Fats.Total = 6.52
	oats.Nutrients.Micronutrients.Iron = 4.25

	milk := nutrition.FoodItem{
		FDCID:        746782,
		Description:  "Milk, whole, 3.25% milkfat",
		DataType:     "Foundation",
		FoodCategory: "Dairy and Egg Products",
		Serving:      nutrition.ServingSpec{Quantity: 1, Unit: units.Cup, Label: "1 cup"},
	}
	milk.Nutrients.Calories = 149
	milk.Nutrients.Protein = 7.69
	milk.Nutrients.Carbs.Total = 11.7
	milk.Nutrients.Carbs.Sugar = 12.3
	milk.Nutrients.Fats.Total = 7.93
	milk.Nutrients.Micronutrients.Calcium = 276

	almonds := nutrition.FoodItem{
		FDCID:        170567,
		Description:  "Nuts, almonds",
		BrandOwner:   "Orchard Co.",
		DataType:     "Branded",
		FoodCategory: "Nut and Seed Products",
		Serving:      nutrition.ServingSpec{Quantity: 1, Unit: units.Ounce, Label: "23 almonds"},
	}
	almonds.Nutrients.Calories = 164
	almonds.Nutrients.Protein = 6.01
	almonds.Nutrients.Carbs.Total = 6.12
	almonds.Nutrients.Fats.Total = 14.2
	almonds.Nutrients.Vitamins.E = 7.27

	return []nutrition.FoodItem{oats, milk, almonds}
}
