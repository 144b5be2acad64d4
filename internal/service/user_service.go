package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=150"`
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	IsSuperuser bool   `json:"is_superuser"`
}

type UpdateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsActive    *bool   `json:"is_active"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// UserService is the superuser facing account management surface. Self
// service flows (login, refresh, password change) live on AuthService.
type UserService interface {
	CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*UserResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) UserService {
	return &userService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

// Helper: parse model to standard json API response
func mapUserToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		IsSuperuser: user.IsSuperuser,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *userService) CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    string(hashed),
		IsSuperuser: req.IsSuperuser,
		IsActive:    true,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("email or username already registered: %w", ErrConflict)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionCreateUser, model.EntityUser, user.ID.String(), user.Email,
			map[string]interface{}{"username": user.Username, "email": user.Email, "is_superuser": user.IsSuperuser})
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return mapUserToResponse(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return mapUserToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUserToResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	changes := map[string]interface{}{}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.repo.GetByUsername(ctx, *req.Username); err == nil {
			return nil, fmt.Errorf("username already taken: %w", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
		changes["username"] = map[string]string{"from": user.Username, "to": *req.Username}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, fmt.Errorf("email already registered: %w", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
		changes["email"] = map[string]string{"from": user.Email, "to": *req.Email}
		user.Email = *req.Email
	}
	if req.FirstName != nil && *req.FirstName != user.FirstName {
		changes["first_name"] = map[string]string{"from": user.FirstName, "to": *req.FirstName}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != user.LastName {
		changes["last_name"] = map[string]string{"from": user.LastName, "to": *req.LastName}
		user.LastName = *req.LastName
	}
	if req.IsSuperuser != nil && *req.IsSuperuser != user.IsSuperuser {
		if user.ID.String() == actor.ID && !*req.IsSuperuser {
			return nil, fmt.Errorf("%w: you cannot revoke your own superuser status", ErrValidation)
		}
		changes["is_superuser"] = map[string]bool{"from": user.IsSuperuser, "to": *req.IsSuperuser}
		user.IsSuperuser = *req.IsSuperuser
	}
	if req.IsActive != nil && *req.IsActive != user.IsActive {
		if user.ID.String() == actor.ID && !*req.IsActive {
			return nil, fmt.Errorf("%w: you cannot deactivate your own account", ErrValidation)
		}
		changes["is_active"] = map[string]bool{"from": user.IsActive, "to": *req.IsActive}
		user.IsActive = *req.IsActive
	}

	if len(changes) == 0 {
		return mapUserToResponse(user), nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("email or username already registered: %w", ErrConflict)
			}
			return fmt.Errorf("failed to update user: %w", err)
		}
		// Deactivation also kills the user's sessions.
		if deactivated, ok := changes["is_active"]; ok {
			if change, ok := deactivated.(map[string]bool); ok && !change["to"] {
				if err := s.repo.DeleteRefreshTokensForUser(txCtx, user.ID.String()); err != nil {
					return fmt.Errorf("failed to revoke sessions: %w", err)
				}
			}
		}
		entry := newAuditEntry(actor, model.ActionUpdateUser, model.EntityUser, user.ID.String(), user.Email, changes)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return mapUserToResponse(user), nil
}

// DeleteUser soft deletes the account and revokes its sessions. Audit entries
// written by the account keep their copied actor name and email.
func (s *userService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.ID.String() == actor.ID {
		return fmt.Errorf("%w: you cannot delete your own account", ErrValidation)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteRefreshTokensForUser(txCtx, user.ID.String()); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		if err := s.repo.Delete(txCtx, user.ID.String()); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionDeleteUser, model.EntityUser, user.ID.String(), user.Email, nil)
		return s.auditRepo.Log(txCtx, entry)
	})
}
