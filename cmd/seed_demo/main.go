package main

import (
	"fmt"
	"log"

	"github.com/kimphuquy/silvershop/internal/catalog"
	"github.com/kimphuquy/silvershop/internal/config"
	"github.com/kimphuquy/silvershop/internal/database"
	"github.com/kimphuquy/silvershop/internal/kvstore"
	"github.com/kimphuquy/silvershop/internal/models"
	"github.com/kimphuquy/silvershop/internal/orders"
)

// Seeds the database with the bundled product snapshot and a few demo
// orders so the admin endpoints have data to show.
func main() {
	fmt.Println("🌱 Silvershop Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	if err := db.AutoMigrate(&models.KVDocument{}, &models.Order{}); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// Persist the snapshot so the catalog starts from a known state
	cat := catalog.NewService(kvstore.New(db))
	products := cat.CurrentProducts()
	fmt.Printf("📦 Catalog initialized with %d products\n", len(products))

	orderSvc := orders.NewService(db)

	demoOrders := []orders.CreateOrderInput{
		{
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Bạc miếng Phú Quý 1kg", Code: "PQ01", SellPrice: 19000000, Quantity: 1},
			},
			CustomerInfo: models.CustomerInfo{
				FullName:    "Nguyễn Văn An",
				PhoneNumber: "0901234567",
				Address:     "12 Nguyễn Ái Quốc",
				District:    "Biên Hòa",
				Province:    "Đồng Nai",
			},
			DeliveryMethod: "delivery",
			PaymentMethod:  "bank_transfer",
		},
		{
			Items: []models.OrderItem{
				{ProductID: 3, Name: "Bạc thỏi Phú Quý 1 lượng", Code: "PQ1L", SellPrice: 1503000, Quantity: 5},
			},
			CustomerInfo: models.CustomerInfo{
				FullName:    "Trần Thị Bích",
				PhoneNumber: "0912345678",
			},
			DeliveryMethod: "pickup",
			PaymentMethod:  "cash",
			StoreAddress:   "107-109 Phạm Văn Thuận, P. Tân Tiến, Biên Hòa, Đồng Nai",
		},
	}

	for _, input := range demoOrders {
		order, err := orderSvc.Create(input)
		if err != nil {
			log.Fatalf("❌ Failed to seed order: %v", err)
		}
		fmt.Printf("🧾 Seeded order %s (%s, total %d VND)\n", order.ID, order.PaymentMethod, order.Total)
	}

	fmt.Println("✅ Demo data seeded")
}
