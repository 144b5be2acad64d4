package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL          = 24 * time.Hour
	refreshTokenTTL         = 7 * 24 * time.Hour
	refreshTokenTTLExtended = 30 * 24 * time.Hour
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// TokenPairResponse carries both tokens plus the authenticated user. The
// handler additionally sets the tokens as cookies for browser clients.
type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	RememberMe   bool         `json:"remember_me"`
	User         UserResponse `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenPairResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error
	CurrentUser(ctx context.Context, userID string) (*UserResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	now       func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		now:       time.Now,
	}
}

// jwtSecret uses the same fallback strategy as the auth middleware. Release
// builds refuse to run on the development default.
func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if gin.Mode() == gin.ReleaseMode {
			panic("JWT_SECRET must be set in release mode")
		}
		secret = "default_super_secret_key"
	}
	return []byte(secret)
}

// Register creates a regular account. Superuser status is only ever granted
// through the user management endpoints, never at sign up.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*TokenPairResponse, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		IsActive:  true,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("email or username already registered: %w", ErrConflict)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		actor := Actor{ID: user.ID.String(), Name: user.FullName(), Email: user.Email}
		entry := newAuditEntry(actor, model.ActionCreateUser, model.EntityUser, user.ID.String(), user.Email, nil)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, false)
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same message for unknown email and wrong password.
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", ErrUnauthorized)
	}

	return s.issueTokens(ctx, user, req.RememberMe)
}

// Refresh exchanges a stored refresh token for a fresh pair. Tokens rotate on
// every use; the presented one is revoked whether or not it is still valid.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required: %w", ErrUnauthorized)
	}

	stored, err := s.userRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refresh token is not recognized: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	if s.now().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("refresh token has expired: %w", ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, fmt.Errorf("refresh token user no longer exists: %w", ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", ErrUnauthorized)
	}

	return s.issueTokens(ctx, user, stored.RememberMe)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.userRepo.DeleteRefreshToken(ctx, refreshToken)
}

// ChangePassword verifies the current password, stores the new hash, and
// revokes every refresh token the user holds so stolen sessions die with the
// old password.
func (s *authService) ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", ErrUnauthorized)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := s.userRepo.DeleteRefreshTokensForUser(txCtx, user.ID.String()); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionChangePassword, model.EntityUser, user.ID.String(), user.Email, nil)
		return s.auditRepo.Log(txCtx, entry)
	})
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return mapUserToResponse(user), nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User, rememberMe bool) (*TokenPairResponse, error) {
	now := s.now()

	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"email":     user.Email,
		"name":      user.FullName(),
		"superuser": user.IsSuperuser,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTokenTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := newRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	ttl := refreshTokenTTL
	if rememberMe {
		ttl = refreshTokenTTLExtended
	}
	stored := &model.RefreshToken{
		UserID:     user.ID,
		Token:      refreshToken,
		RememberMe: rememberMe,
		ExpiresAt:  now.Add(ttl),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RememberMe:   rememberMe,
		User:         *mapUserToResponse(user),
	}, nil
}

func newRefreshTokenValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
