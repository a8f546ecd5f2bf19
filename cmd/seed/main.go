package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/config"
	"github.com/Technizer/ModeFilter-Pro/models"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main seeds a small demo catalog: terms across the three axes, entries
// with a mix of mode overrides, and the settings row.
// Usage: go run cmd/seed/main.go
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("MODEFILTER - Demo Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	log.Println("✓ Connected to database")

	db := config.StoreGorm

	if err := db.AutoMigrate(&models.Term{}, &models.Entry{}, &models.EntryTerm{}, &models.StoreSettings{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✓ Schema migrated")

	terms := seedTerms(db)
	seedEntries(db, terms)
	seedSettings(db)

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Demo Catalog Seeded Successfully!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. Render a shell: GET /api/v1/store/grid/shell")
	fmt.Println("3. Fetch pages with the returned token: POST /api/v1/store/grid")
	fmt.Println()
}

func seedTerms(db *gorm.DB) map[string]models.Term {
	specs := []struct {
		key         string
		name        string
		slug        string
		taxonomy    string
		modeDefault string
	}{
		{"sofas", "Sofas", "sofas", models.AxisCategory, ""},
		{"tables", "Tables", "tables", models.AxisCategory, ""},
		{"showroom", "Showroom Pieces", "showroom", models.AxisCategory, catalog.OverrideCatalog},
		{"new", "New Arrivals", "new-arrivals", models.AxisTag, ""},
		{"handmade", "Handmade", "handmade", models.AxisTag, catalog.OverrideCatalog},
		{"nordica", "Nordica", "nordica", models.AxisBrand, ""},
		{"atelier", "Atelier Uno", "atelier-uno", models.AxisBrand, catalog.OverrideSell},
	}

	terms := make(map[string]models.Term, len(specs))
	for _, spec := range specs {
		term := models.Term{
			Name:     spec.name,
			Slug:     spec.slug,
			Taxonomy: spec.taxonomy,
			Meta:     datatypes.JSONMap{},
		}
		if spec.modeDefault != "" {
			term.Meta[catalog.TermDefaultKey] = spec.modeDefault
		}
		if err := db.Where("taxonomy = ? AND slug = ?", spec.taxonomy, spec.slug).
			FirstOrCreate(&term).Error; err != nil {
			log.Fatalf("Failed to seed term %q: %v", spec.slug, err)
		}
		terms[spec.key] = term
	}

	log.Printf("✓ Seeded %d terms", len(terms))
	return terms
}

func seedEntries(db *gorm.DB, terms map[string]models.Term) {
	specs := []struct {
		name     string
		price    float64
		rating   float64
		ratings  int
		stock    string
		override string
		termKeys []string
	}{
		{"Fjord Two-Seater", 899, 4.6, 31, models.StockInStock, "", []string{"sofas", "new", "nordica"}},
		{"Fjord Chaise", 1299, 4.8, 12, models.StockPreorder, "", []string{"sofas", "nordica"}},
		{"Heritage Oak Table", 2100, 4.9, 8, models.StockInStock, catalog.OverrideCatalog, []string{"tables", "handmade"}},
		{"Atelier Side Table", 340, 4.2, 19, models.StockInStock, "", []string{"tables", "handmade", "atelier"}},
		{"Prototype Lounge", 0, 0, 0, models.StockOutOfStock, "", []string{"showroom"}},
		{"Showroom Walnut Desk", 1750, 5, 3, models.StockInStock, catalog.OverrideSell, []string{"showroom", "tables"}},
	}

	created := 0
	for _, spec := range specs {
		entry := models.Entry{
			Name:          spec.name,
			Description:   fmt.Sprintf("%s from the demo catalog.", spec.name),
			Price:         spec.price,
			RatingAverage: spec.rating,
			RatingCount:   spec.ratings,
			StockStatus:   spec.stock,
			Status:        models.EntryPublished,
			Meta:          datatypes.JSONMap{},
		}
		if spec.override != "" {
			entry.Meta[catalog.EntryOverrideKey] = spec.override
		}
		for _, key := range spec.termKeys {
			term := terms[key]
			entry.Terms = append(entry.Terms, &term)
		}

		var existing models.Entry
		err := db.Where("name = ?", spec.name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Database error: %v", err)
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Fatalf("Failed to seed entry %q: %v", spec.name, err)
		}
		created++
	}

	log.Printf("✓ Seeded %d entries", created)
}

func seedSettings(db *gorm.DB) {
	var existing models.StoreSettings
	if err := db.First(&existing).Error; err == nil {
		log.Println("✓ Settings row already present")
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Database error: %v", err)
	}

	settings := models.DefaultSettings()
	settings.GlobalMode = models.GlobalModeHybrid
	if err := db.Create(&settings).Error; err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}
	log.Println("✓ Seeded settings row")
}
