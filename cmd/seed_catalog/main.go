package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/service"
)

// seedEntry mirrors the JSON seed file format. Macros are per 100 g
// unless unit is set, in which case they are per discrete item.
type seedEntry struct {
	Name     string   `json:"name"`
	Protein  float64  `json:"protein"`
	Fats     float64  `json:"fats"`
	Carbs    float64  `json:"carbs"`
	Calories float64  `json:"calories"`
	Cost     float64  `json:"cost"`
	Unit     bool     `json:"unit"`
	Tags     []string `json:"tags"`
}

// starterCatalog seeds a usable baseline when no seed file is given.
var starterCatalog = []seedEntry{
	{Name: "Chicken Breast", Protein: 31, Fats: 3.6, Carbs: 0, Calories: 165, Cost: 1.10, Tags: []string{"protein"}},
	{Name: "White Rice", Protein: 2.7, Fats: 0.3, Carbs: 28, Calories: 130, Cost: 0.16, Tags: []string{"carbs", "staple"}},
	{Name: "Rolled Oats", Protein: 13.5, Fats: 7, Carbs: 68, Calories: 389, Cost: 0.30, Tags: []string{"carbs", "breakfast"}},
	{Name: "Whole Egg", Protein: 6.3, Fats: 5.3, Carbs: 0.4, Calories: 72, Cost: 0.35, Unit: true, Tags: []string{"protein", "breakfast"}},
	{Name: "Banana", Protein: 1.3, Fats: 0.4, Carbs: 27, Calories: 105, Cost: 0.25, Unit: true, Tags: []string{"fruit"}},
	{Name: "Whey Protein Scoop", Protein: 24, Fats: 1.5, Carbs: 3, Calories: 120, Cost: 0.90, Unit: true, Tags: []string{"protein", "supplement"}},
	{Name: "Olive Oil", Protein: 0, Fats: 100, Carbs: 0, Calories: 884, Cost: 1.00, Tags: []string{"fats"}},
	{Name: "Greek Yogurt", Protein: 10, Fats: 0.4, Carbs: 3.6, Calories: 59, Cost: 0.45, Tags: []string{"protein", "dairy"}},
	{Name: "Broccoli", Protein: 2.8, Fats: 0.4, Carbs: 7, Calories: 34, Cost: 0.40, Tags: []string{"vegetable"}},
	{Name: "Salmon Fillet", Protein: 20, Fats: 13, Carbs: 0, Calories: 208, Cost: 2.60, Tags: []string{"protein", "fish"}},
	{Name: "Sweet Potato", Protein: 1.6, Fats: 0.1, Carbs: 20, Calories: 86, Cost: 0.22, Tags: []string{"carbs", "vegetable"}},
	{Name: "Almonds", Protein: 21, Fats: 50, Carbs: 22, Calories: 579, Cost: 1.50, Tags: []string{"fats", "snack"}},
	{Name: "Cottage Cheese", Protein: 11, Fats: 4.3, Carbs: 3.4, Calories: 98, Cost: 0.55, Tags: []string{"protein", "dairy"}},
	{Name: "Whole Wheat Bread Slice", Protein: 3.6, Fats: 1.1, Carbs: 12, Calories: 69, Cost: 0.15, Unit: true, Tags: []string{"carbs"}},
	{Name: "Apple", Protein: 0.5, Fats: 0.3, Carbs: 25, Calories: 95, Cost: 0.30, Unit: true, Tags: []string{"fruit"}},
}

func main() {
	seedFile := flag.String("file", "", "JSON file with catalog entries (defaults to the built-in starter set)")
	email := flag.String("email", "", "Email of the user to seed the catalog for (required)")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email flag is required")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	entries := starterCatalog
	if *seedFile != "" {
		content, err := os.ReadFile(*seedFile)
		if err != nil {
			log.Fatalf("Failed to read seed file: %v", err)
		}
		if err := json.Unmarshal(content, &entries); err != nil {
			log.Fatalf("Failed to parse seed file: %v", err)
		}
	}

	var user models.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("Failed to find user %s: %v", *email, err)
	}

	seeded := 0
	for _, entry := range entries {
		food := models.FoodCatalogEntry{
			UserID:          user.ID,
			Name:            service.NormalizeFoodName(entry.Name),
			Protein:         entry.Protein,
			Fats:            entry.Fats,
			Carbs:           entry.Carbs,
			Calories:        entry.Calories,
			CostPerQuantity: entry.Cost,
			IsUnitFood:      entry.Unit,
			Tags:            pq.StringArray(entry.Tags),
		}

		result := db.Where("user_id = ? AND name = ?", user.ID, food.Name).
			FirstOrCreate(&food)
		if result.Error != nil {
			log.Printf("Failed to seed %s: %v", food.Name, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			seeded++
			log.Printf("Seeded %s", food.Name)
		} else {
			log.Printf("Skipping %s (already present)", food.Name)
		}
	}

	log.Printf("Seeded %d of %d catalog entries for %s", seeded, len(entries), *email)
}
