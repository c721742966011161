package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/questdeck/questdeck-backend/internal/repository"
)

// AuthMiddleware validates bearer tokens issued by the identity provider
// and sets the account context. The provider signs with HS256 using the
// shared secret; claims carry the account id (sub), email and name.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Printf("[Auth] Missing Authorization header - Path: %s", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Printf("[Auth] Invalid header format - Path: %s", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("[Auth] Invalid token - Path: %s, Error: %v", c.Request.URL.Path, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		accountID, _ := claims["sub"].(string)
		if accountID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		c.Set("accountID", accountID)
		c.Set("accountEmail", email)
		c.Set("accountName", name)
		c.Next()
	}
}

// RequestLogger logs all incoming requests with details
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		log.Printf("[%s] %s %d - %v", method, path, status, duration)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				log.Printf("[Error] %v", e.Err)
			}
		}
	}
}

// GetAccountID extracts the account ID from gin context
func GetAccountID(c *gin.Context) string {
	accountID, exists := c.Get("accountID")
	if !exists {
		return ""
	}
	return accountID.(string)
}

// GetAccount builds the authenticated identity from context
func GetAccount(c *gin.Context) *repository.Account {
	accountID := GetAccountID(c)
	if accountID == "" {
		return nil
	}
	email, _ := c.Get("accountEmail")
	name, _ := c.Get("accountName")

	account := &repository.Account{ID: accountID}
	if s, ok := email.(string); ok {
		account.Email = s
	}
	if s, ok := name.(string); ok {
		account.DisplayName = s
	}
	return account
}

// RequireAccountID returns false and writes a 401 when no identity is set
func RequireAccountID(c *gin.Context) (string, bool) {
	accountID := GetAccountID(c)
	if accountID == "" {
		log.Printf("[Auth] Not authenticated - Path: %s", c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	return accountID, true
}
