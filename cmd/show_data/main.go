package main

import (
	"fmt"
	"log"
	"time"

	"github.com/kimphuquy/silvershop/internal/catalog"
	"github.com/kimphuquy/silvershop/internal/config"
	"github.com/kimphuquy/silvershop/internal/database"
	"github.com/kimphuquy/silvershop/internal/kvstore"
	"github.com/kimphuquy/silvershop/internal/models"
)

// Prints the persisted catalog and order state for debugging.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect: %v\n💡 Try starting the server first: go run ./cmd/api", err)
	}
	defer db.Close()

	fmt.Println("📊 Silvershop Data Report")
	fmt.Println("──────────────────────────────────────────────")

	cat := catalog.NewService(kvstore.New(db))

	products := cat.CurrentProducts()
	fmt.Printf("Products: %d (outdated: %v)\n", len(products), cat.IsOutdated())
	if last, ok := cat.LastUpdateTime(); ok {
		fmt.Printf("Last price update: %s (%v ago)\n", last.Format(time.RFC3339), time.Since(last).Round(time.Second))
	} else {
		fmt.Println("Last price update: never")
	}
	fmt.Println()

	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = string(p.Status)
		}
		fmt.Printf("  [%d] %-35s %-8s sell %12d  buy %12d  %s\n",
			p.ID, p.Name, p.Code, p.SellPrice, p.BuyPrice, stock)
	}
	fmt.Println()

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	fmt.Printf("Orders: %d\n", orderCount)

	var recent []models.Order
	db.Order("created_at DESC").Limit(10).Find(&recent)
	for _, o := range recent {
		fmt.Printf("  %s  %-10s  total %12d  %s\n",
			o.ID, o.Status, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
	}
}
