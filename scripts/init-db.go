package main

import (
	"fmt"
	"log"
	"time"

	"roti_pos/internal/config"
	"roti_pos/internal/database"
	"roti_pos/internal/models"
	"roti_pos/internal/repository"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables with proper schema
	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed a few demo orders so the browser has data on first run
	fmt.Println("Seeding demo orders...")
	orderRepo := repository.NewOrderRepository(db)

	demoOrders := []*models.Order{
		{
			Items: []models.OrderItem{
				{Position: 0, Name: "Sada Roti", Quantity: 4, Price: 15, Total: 60},
				{Position: 1, Name: "Channy", Quantity: 1, Price: 100, Total: 100},
			},
			PaymentMethod: string(models.PaymentCash),
			OrderType:     string(models.OrderPickup),
			Note:          "extra butter",
			Total:         160,
			CreatedAt:     time.Now(),
		},
		{
			Items: []models.OrderItem{
				{Position: 0, Name: "Sada Nan", Quantity: 2, Price: 30, Total: 60},
			},
			PaymentMethod: string(models.PaymentOnline),
			OrderType:     string(models.OrderDelivery),
			Total:         60,
			CreatedAt:     time.Now(),
		},
	}

	for _, order := range demoOrders {
		if err := orderRepo.Create(order); err != nil {
			log.Fatal("Failed to seed order:", err)
		}
	}

	seeded, err := orderRepo.GetAll()
	if err != nil {
		log.Fatal("Failed to verify seeded orders:", err)
	}

	fmt.Printf("Database initialized with %d orders\n", len(seeded))
}
