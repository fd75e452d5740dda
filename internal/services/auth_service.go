package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"superstore/internal/apperrors"
	"superstore/internal/models"
	"superstore/internal/repositories"
)

// AuthService handles sign-up, sign-in and token validation.
type AuthService struct {
	userRepo      repositories.UserRepository
	publisher     EventPublisher
	jwtSecret     []byte
	tokenDuration time.Duration
	allowedOrigin string
}

// NewAuthService creates a new AuthService. allowedOrigin is the
// frontend origin used to build password-reset links.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher, jwtSecret, allowedOrigin string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		publisher:     publisher,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
		allowedOrigin: allowedOrigin,
	}
}

// SignUpRequest is the input of user registration.
type SignUpRequest struct {
	FirstName       string `json:"firstName" validate:"required,min=1,max=100"`
	LastName        string `json:"lastName" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// SignUp registers a new user and signs them in. The admin flag is
// always forced off for self-registration.
func (s *AuthService) SignUp(req SignUpRequest) (string, *models.User, error) {
	if strings.TrimSpace(req.Password) != strings.TrimSpace(req.ConfirmPassword) {
		return "", nil, apperrors.NewValidation("password", "passwords do not match")
	}

	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return "", nil, apperrors.NewConflict("this email is already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		IsAdmin:   false,
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	user.Password = ""
	return token, user, nil
}

// SignIn authenticates a user by email and password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, apperrors.NewConflict("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.NewConflict("invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	user.Password = ""
	return token, user, nil
}

// SignInWithToken verifies an existing token, reloads the user and
// issues a fresh token. Any failure surfaces as an expired session.
func (s *AuthService) SignInWithToken(tokenString string) (string, *models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", nil, apperrors.NewConflict("your session has expired, please sign in again")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return "", nil, apperrors.NewConflict("your session has expired, please sign in again")
	}

	user, err := s.userRepo.GetByID(uint(userID))
	if err != nil {
		return "", nil, apperrors.NewConflict("invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	user.Password = ""
	return token, user, nil
}

// UpdatePassword re-hashes and stores a new password for the user.
func (s *AuthService) UpdatePassword(userID uint, password, confirmPassword string) error {
	if password != confirmPassword {
		return apperrors.NewValidation("password", "passwords do not match")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return apperrors.NewConflict("invalid credentials")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	return s.userRepo.Update(user)
}

// ForgotPassword enqueues a reset-link email when the address belongs to
// a known user. An unknown email is a silent no-op so the endpoint does
// not leak which addresses exist.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return err
	}
	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.allowedOrigin, token)

	if s.publisher == nil {
		log.Printf("No event publisher configured, dropping password reset for %s", user.Email)
		return nil
	}
	return s.publisher.PublishPasswordReset(user.Email, resetLink)
}

// ValidateToken parses and validates a JWT, returning its claims.
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

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.tokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
