package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/config"
)

func TestMintAndParseCustomerToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "adorzia",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	customerID := uuid.New()

	payload := CustomerTokenPayload{
		CustomerID: customerID,
		Email:      "shopper@example.com",
	}

	token, err := MintCustomerToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint customer token: %v", err)
	}

	claims, err := ParseCustomerToken(cfg, token)
	if err != nil {
		t.Fatalf("parse customer token: %v", err)
	}

	if claims.CustomerID != customerID {
		t.Fatalf("expected customer_id %s, got %s", customerID, claims.CustomerID)
	}
	if claims.Email != "shopper@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseCustomerTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "adorzia",
		ExpirationMinutes: 10,
	}
	now := time.Now()

	token, err := MintCustomerToken(cfg, now, CustomerTokenPayload{CustomerID: uuid.New()})
	if err != nil {
		t.Fatalf("mint customer token: %v", err)
	}

	tampered := config.JWTConfig{Secret: "other", Issuer: cfg.Issuer}
	if _, err := ParseCustomerToken(tampered, token); err == nil {
		t.Fatalf("expected signature validation to fail")
	}
}

func TestParseCustomerTokenWrongIssuer(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "adorzia",
		ExpirationMinutes: 10,
	}

	token, err := MintCustomerToken(cfg, time.Now(), CustomerTokenPayload{CustomerID: uuid.New()})
	if err != nil {
		t.Fatalf("mint customer token: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseCustomerToken(other, token); err == nil {
		t.Fatalf("expected issuer validation to fail")
	}
}

func TestMintCustomerTokenRejectsBadConfig(t *testing.T) {
	now := time.Now()
	payload := CustomerTokenPayload{CustomerID: uuid.New()}

	if _, err := MintCustomerToken(config.JWTConfig{Issuer: "adorzia", ExpirationMinutes: 10}, now, payload); err == nil {
		t.Fatalf("expected missing secret to fail")
	}
	if _, err := MintCustomerToken(config.JWTConfig{Secret: "secret", ExpirationMinutes: 10}, now, payload); err == nil {
		t.Fatalf("expected missing issuer to fail")
	}
	if _, err := MintCustomerToken(config.JWTConfig{Secret: "secret", Issuer: "adorzia"}, now, payload); err == nil {
		t.Fatalf("expected zero expiration to fail")
	}
	if _, err := MintCustomerToken(config.JWTConfig{Secret: "secret", Issuer: "adorzia", ExpirationMinutes: 10}, now, CustomerTokenPayload{}); err == nil {
		t.Fatalf("expected nil customer id to fail")
	}
}
