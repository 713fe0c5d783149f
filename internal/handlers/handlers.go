package handlers

import (
	"database/sql"

	"github.com/farhank0/grocerylink-golang/internal/ai"
	"github.com/farhank0/grocerylink-golang/internal/auth"
)

// Handlers holds all dependencies for our handlers.
type Handlers struct {
	DB        *sql.DB            // Primary Read/Write connection
	Verifier  auth.TokenVerifier // Federated identity collaborator (may be nil)
	Assistant *ai.Assistant      // Chat assistant (nil when no API key is configured)
}
