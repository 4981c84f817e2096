package handler

import (
	"net/http"
	"os"
	"strings"
	"time"

	"campusvoice/backend/internal/config"
	"campusvoice/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	jwt "github.com/golang-jwt/jwt/v5"
)

const sessionContextKey = "session"

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// generateJWT генерує JWT, що посилається на сесію в Redis.
// Роль живе в сесії, а не в токені: відкликати сесію достатньо,
// щоб токен став недійсним.
func generateJWT(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(config.SessionTTL).Unix(),
		"iss": "campusvoice-api",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// parseSessionID validates the token signature and returns the session ID.
func parseSessionID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}

// bearerToken extracts the token from the Authorization header, falling back
// to the "token" query parameter for websocket clients that cannot set
// headers.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// resolveSession turns a raw token into the stored session, or nil.
func (h *Handler) resolveSession(tokenString string) (*models.Session, string, error) {
	sid, err := parseSessionID(tokenString)
	if err != nil {
		return nil, "", err
	}
	sess, err := h.Storage.GetSession(sid)
	if err != nil {
		return nil, "", err
	}
	return sess, sid, nil
}

// RequireSession rejects requests that do not carry a valid token backed by a
// live session.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
			return
		}

		sess, sid, err := h.resolveSession(tokenString)
		if err != nil || sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(sessionContextKey, *sess)
		c.Set("session_id", sid)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromContext(c)
		if !sess.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func sessionFromContext(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(models.Session); ok {
			return sess
		}
	}
	return models.Session{}
}

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Department string `json:"department"`
	StudentID  string `json:"studentId"`
}

// Register creates a student account. Admin accounts are provisioned through
// the ops CLI, never over the API.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.renderError(c, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         config.RoleStudent,
		Department:   req.Department,
		StudentID:    req.StudentID,
	}
	if err := h.Storage.CreateUser(user); err != nil {
		h.renderError(c, err)
		return
	}

	h.Log.WithUserID(user.ID).Info("user registered")
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, stores a session in Redis and returns a JWT
// referencing it.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	sid := uuid.New().String()
	sess := models.Session{
		UserID:   user.ID,
		UserName: user.Name,
		Role:     user.Role,
	}
	if err := h.Storage.SaveSession(sid, sess); err != nil {
		h.renderError(c, err)
		return
	}

	token, err := generateJWT(sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout revokes the session behind the presented token.
func (h *Handler) Logout(c *gin.Context) {
	sid := c.GetString("session_id")
	if sid != "" {
		if err := h.Storage.DeleteSession(sid); err != nil {
			h.renderError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
