package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warblerhq/warbler/backend/internal/models"
	"github.com/warblerhq/warbler/backend/internal/types"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

const tokenTTL = 24 * time.Hour

// AuthService owns signup, authentication and access tokens.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Signup validates the request, hashes the password and creates the user.
// A username or email collision surfaces as ErrDuplicateKey; nothing is
// written in that case.
func (s *AuthService) Signup(ctx context.Context, req *types.SignupRequest) (*models.User, error) {
	if err := ValidateSignup(req.Username, req.Email, req.Password); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hashed,
		ImageURL:       req.ImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &user, nil
}

// Authenticate looks the user up by username and verifies the password.
// A missing user and a wrong password both return (nil, nil): callers must
// not be able to tell which part of the credential was wrong.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return &user, nil
}

// GenerateToken issues a signed access token for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
