package auth

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tfboppong-code/joeythebrand/models"
)

// IssueSessionToken generates the API's own session JWT for a resolved
// identity.
func IssueSessionToken(identity models.Identity) string {
	claims := jwt.MapClaims{
		"user_id": identity.UID,
		"email":   identity.Email,
		"role":    string(identity.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Printf("❌ Failed to sign JWT: %v", err)
		return ""
	}
	return signed
}

// ParseSessionToken validates a session JWT and returns the uid it names.
func ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return "", errors.New("token has no user_id")
	}
	return uid, nil
}
