package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/farhank0/grocerylink-golang/internal/auth"
	"github.com/farhank0/grocerylink-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- User Registration ---

type AddressInput struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
}

// RegisterInput is the payload of POST /api/auth/register. Password is only
// required for direct accounts; federated sign-ups carry an idToken instead.
type RegisterInput struct {
	Email       string       `json:"email" binding:"required,email"`
	Password    string       `json:"password" binding:"omitempty,min=6"`
	Name        string       `json:"name" binding:"required"`
	UserType    string       `json:"userType" binding:"required,oneof=consumer provider"`
	PhoneNumber string       `json:"phoneNumber" binding:"required"`
	Address     AddressInput `json:"address" binding:"required"`
	Provider    string       `json:"provider"`
	IDToken     string       `json:"idToken"`
}

// Register is the handler for POST /api/auth/register.
// Auth endpoints report failures as {"message": ...} to match the API the
// web client was built against.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	now := time.Now()
	user := &models.User{
		Email:       input.Email,
		Name:        input.Name,
		UserType:    input.UserType,
		PhoneNumber: input.PhoneNumber,
		Address: models.Address{
			Street:  input.Address.Street,
			City:    input.Address.City,
			ZipCode: input.Address.ZipCode,
		},
		Provider:  input.Provider,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.IDToken != "" {
		// Federated sign-up: the identity collaborator's subject becomes the
		// user id; no password is stored.
		if h.Verifier == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Federated sign-up is not enabled"})
			return
		}
		identity, err := h.Verifier.Verify(c.Request.Context(), input.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid identity token"})
			return
		}
		user.ID = identity.Subject
		if user.Provider == "" {
			user.Provider = "google.com"
		}
		if identity.PhotoURL != "" {
			user.PhotoURL = &identity.PhotoURL
		}
	} else {
		if input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required"})
			return
		}
		user.ID = uuid.NewString()
		if user.Provider == "" {
			user.Provider = "password"
		}

		var password models.Password
		if err := password.Set(input.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		user.PasswordHash = &password.Hash
	}

	// Duplicate email check before insert, mirroring the original API's
	// "already registered" message.
	var exists int
	err := h.DB.QueryRow("SELECT 1 FROM users WHERE email = ?", user.Email).Scan(&exists)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Email already registered. Please use a different email or try logging in.",
		})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	query := `
		INSERT INTO users
		(id, email, password_hash, name, user_type, phone_number, street, city, zip_code, provider, photo_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = h.DB.Exec(query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.UserType,
		user.PhoneNumber, user.Address.Street, user.Address.City, user.Address.ZipCode,
		user.Provider, user.PhotoURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  user.ID,
		"user":    user,
	})
}

// --- User Login ---

// LoginInput covers both login flavours: federated ({idToken, email, name,
// photoURL}) and direct ({email, password, rememberMe}).
type LoginInput struct {
	IDToken    string `json:"idToken"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
	Name       string `json:"name"`
	PhotoURL   string `json:"photoURL"`
}

// Login is the handler for POST /api/auth/login. Returns {token, user}.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.IDToken != "" {
		h.loginFederated(c, input)
		return
	}
	h.loginDirect(c, input)
}

func (h *Handlers) loginFederated(c *gin.Context, input LoginInput) {
	if h.Verifier == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Federated sign-in is not enabled"})
		return
	}

	identity, err := h.Verifier.Verify(c.Request.Context(), input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid identity token"})
		return
	}

	user, err := h.findUserByID(identity.Subject)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found. Please register first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	token, err := auth.GenerateToken(user.ID, auth.DefaultTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handlers) loginDirect(c *gin.Context, input LoginInput) {
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := h.findUserByEmail(input.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if user.PasswordHash == nil {
		// Federated account, no password to check against.
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	password := models.Password{Hash: *user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	ttl := auth.DefaultTokenTTL
	if input.RememberMe {
		ttl = auth.RememberMeTokenTTL
	}
	token, err := auth.GenerateToken(user.ID, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me is the handler for GET /api/auth/me.
func (h *Handlers) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.findUserByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

const userColumns = `id, email, password_hash, name, user_type, phone_number, street, city, zip_code, provider, photo_url, created_at, updated_at`

func (h *Handlers) findUserByID(id string) (*models.User, error) {
	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (h *Handlers) findUserByEmail(email string) (*models.User, error) {
	row := h.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.UserType, &u.PhoneNumber,
		&u.Address.Street, &u.Address.City, &u.Address.ZipCode,
		&u.Provider, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
