package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CustomerTokenPayload captures the data available when minting a JWT.
type CustomerTokenPayload struct {
	CustomerID uuid.UUID
	Email      string
	JTI        string
}

// CustomerTokenClaims represents the typed JWT issued to storefront customers.
type CustomerTokenClaims struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Email      string    `json:"email,omitempty"`
	jwt.RegisteredClaims
}
