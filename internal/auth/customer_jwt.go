package auth

import (
	"errors"
	"time"

	"mfin-backend/internal/config"
	"mfin-backend/internal/models"
	"mfin-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

// CustomerClaims represents JWT claims for borrower portal authentication
type CustomerClaims struct {
	CustomerID string `json:"customer_id"`
	Phone      string `json:"phone"`
	Name       string `json:"name"`
	IsCustomer bool   `json:"is_customer"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// GenerateCustomerToken creates a new JWT token for a borrower
func (j *JWTManager) GenerateCustomerToken(customer *models.Customer, rememberMe bool) (string, error) {
	now := timeutil.Now()
	var expirationTime time.Time

	if rememberMe {
		// 30 days for "Remember Me"
		expirationTime = now.Add(30 * 24 * time.Hour)
	} else {
		expirationTime = now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)
	}

	claims := &CustomerClaims{
		CustomerID: customer.ID,
		Phone:      customer.Phone,
		Name:       customer.Name,
		IsCustomer: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateCustomerToken verifies a borrower JWT token and returns the claims
func (j *JWTManager) ValidateCustomerToken(tokenString string) (*CustomerClaims, error) {
	claims := &CustomerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Ensure this is a borrower token, not some other issue of the same secret
	if !claims.IsCustomer {
		return nil, errors.New("not a customer token")
	}

	return claims, nil
}
