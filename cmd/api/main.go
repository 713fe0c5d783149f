package main

import (
	"log"
	"os"
	"time"

	"github.com/farhank0/grocerylink-golang/internal/ai"
	"github.com/farhank0/grocerylink-golang/internal/auth"
	"github.com/farhank0/grocerylink-golang/internal/database"
	"github.com/farhank0/grocerylink-golang/internal/handlers"
	"github.com/farhank0/grocerylink-golang/internal/routes"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// 1. Load environment variables from .env (ignored in production where
	// the environment is set by the platform).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	// The dashboard frontend expects prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	// 2. Connect to the database.
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	// 3. Wire the handler dependencies.
	h := &handlers.Handlers{DB: db}

	// Federated sign-in verifier (optional; without it only email/password
	// login works).
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		h.Verifier = auth.NewGoogleVerifier(clientID)
		log.Println("Federated sign-in enabled")
	} else {
		log.Println("GOOGLE_CLIENT_ID not set, federated sign-in disabled")
	}

	// Assistant (optional; the chat endpoint reports unavailable without it).
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		// A separate read-only DSN keeps the assistant's SQL tool away from
		// write privileges; fall back to the main pool if none is set.
		assistantDB := db
		if roDSN := os.Getenv("DB_READONLY_DSN"); roDSN != "" {
			assistantDB, err = database.OpenDBWithDSN(roDSN)
			if err != nil {
				log.Fatalf("Could not connect to the read-only database: %v", err)
			}
			defer assistantDB.Close()
		}
		assistant, err := ai.NewAssistant(apiKey, assistantDB)
		if err != nil {
			log.Fatalf("Could not initialize the assistant: %v", err)
		}
		h.Assistant = assistant
		log.Println("Assistant enabled")
	} else {
		log.Println("GEMINI_API_KEY not set, assistant disabled")
	}

	// 4. Background worker: sweep stale pending orders once an hour.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			h.CancelStaleOrders()
		}
	}()

	// 5. Start the server.
	router := routes.SetupRouter(h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
