package security

import (
	"errors"
	"time"

	"blogforge/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a signed, time-bounded session token. Verification is
// stateless: signature plus expiry, no server-side session table.
func GenerateToken(accountID, email, username string) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"email":      email,
		"username":   username,
		"exp":        time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":        time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by the auth middleware
func GetAccountIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["account_id"].(string)
	if !ok {
		return "", errors.New("account_id claim is missing or not a string")
	}
	return id, nil
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}
