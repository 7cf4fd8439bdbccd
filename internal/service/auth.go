package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/types"
)

const tokenIssuer = "recipe-api"

// AuthService manages user accounts and the tokens that authenticate them.
type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	revoked   RevocationStore
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, revoked RevocationStore) *AuthService {
	if revoked == nil {
		revoked = NewMemoryRevocationStore()
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		revoked:   revoked,
		now:       time.Now,
	}
}

// CreateUser creates, saves and returns a new active user.
func (s *AuthService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Name:     name,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// CreateSuperuser creates a user with staff and superuser rights.
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.CreateUser(ctx, email, password, "")
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"is_staff":     true,
		"is_superuser": true,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	return user, nil
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string, exceptID uint) error {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return ErrUserExists
	}
	return nil
}

// Authenticate returns the active user matching the credentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GenerateToken issues a signed token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifies the signature, expiry and revocation state of a
// token and refreshes the staff flag from the user record.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	user, err := s.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	claims.IsStaff = user.IsStaff

	return claims, nil
}

// RevokeToken blocks a token for the rest of its lifetime.
func (s *AuthService) RevokeToken(ctx context.Context, claims *types.TokenClaims) error {
	if claims == nil || claims.ID == "" {
		return ErrInvalidToken
	}
	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	return s.revoked.Revoke(ctx, claims.ID, ttl)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpdateUser applies the non-nil fields of req to the user.
func (s *AuthService) UpdateUser(ctx context.Context, id uint, req types.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		email := models.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = user.PasswordHash
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

// ListUsers returns every user ordered by id.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
