package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AuthService authenticates admin accounts and issues JWTs for them.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
	}
}

// LoginRequest represents the request body for admin login.
type LoginRequest struct {
	bodyState `json:"-" validate:"-"`

	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginRules = fieldRules{
	"email":    {code: apperror.CodeInvalidCredentials, message: "A valid email is required"},
	"password": {code: apperror.CodeInvalidCredentials, message: "Password is required"},
}

func (r *LoginRequest) rules() fieldRules { return loginRules }

// EnsureAdmin creates the admin account if no account with email exists.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.Create(ctx, &models.User{Email: email, Password: string(hashedPassword)}); err != nil {
		return false, err
	}
	return true, nil
}

// Login authenticates an admin and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := check(req); err != nil {
		return "", err
	}

	invalid := apperror.Unauthorized(apperror.CodeInvalidCredentials, "Invalid credentials")
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", invalid
		}
		return "", apperror.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", invalid
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("failed to generate token: %w", err))
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
