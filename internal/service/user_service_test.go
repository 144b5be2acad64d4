package service

import (
	"context"
	"testing"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userServiceFixture struct {
	svc   UserService
	users *MockUserRepository
	audit *MockAuditRepository

	admin model.User
	clerk model.User
}

func newUserServiceFixture() *userServiceFixture {
	f := &userServiceFixture{
		users: &MockUserRepository{},
		audit: &MockAuditRepository{},
	}
	f.admin = model.User{
		ID:          uuid.MustParse(testAdmin.ID),
		Username:    "asha.odhiambo",
		Email:       testAdmin.Email,
		FirstName:   "Asha",
		LastName:    "Odhiambo",
		IsSuperuser: true,
		IsActive:    true,
	}
	f.clerk = model.User{
		ID:        uuid.MustParse(testClerk.ID),
		Username:  "brian.kiprotich",
		Email:     testClerk.Email,
		FirstName: "Brian",
		LastName:  "Kiprotich",
		IsActive:  true,
	}

	f.users.GetByIDFunc = func(ctx context.Context, id string) (*model.User, error) {
		for _, u := range []model.User{f.admin, f.clerk} {
			if u.ID.String() == id {
				u := u
				return &u, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}

	f.svc = NewUserService(f.users, f.audit, &MockTransactionManager{})
	return f
}

func TestCreateUserHashesPassword(t *testing.T) {
	f := newUserServiceFixture()

	var created *model.User
	f.users.CreateFunc = func(ctx context.Context, user *model.User) error {
		user.ID = uuid.New()
		created = user
		return nil
	}

	res, err := f.svc.CreateUser(context.Background(), testAdmin, CreateUserRequest{
		Username:  "naledi.dlamini",
		Email:     "new@example.com",
		FirstName: "Naledi",
		LastName:  "Dlamini",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "Naledi Dlamini", res.FullName)
	assert.Equal(t, "naledi.dlamini", res.Username)
	assert.True(t, res.IsActive, "new accounts start active")

	require.NotNil(t, created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("correct horse battery")))

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionCreateUser, entries[0].Action)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newUserServiceFixture()
	f.users.GetByEmailFunc = func(ctx context.Context, email string) (*model.User, error) {
		u := f.clerk
		return &u, nil
	}

	_, err := f.svc.CreateUser(context.Background(), testAdmin, CreateUserRequest{
		Username: "someone.new", Email: testClerk.Email, FirstName: "X", LastName: "Y", Password: "longenough",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, f.audit.Entries())
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	f := newUserServiceFixture()
	f.users.GetByUsernameFunc = func(ctx context.Context, username string) (*model.User, error) {
		u := f.clerk
		return &u, nil
	}

	_, err := f.svc.CreateUser(context.Background(), testAdmin, CreateUserRequest{
		Username: f.clerk.Username, Email: "fresh@example.com", FirstName: "X", LastName: "Y", Password: "longenough",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "username already taken")
	assert.Empty(t, f.audit.Entries())
}

func TestUpdateUserRenameChecksUsernameUniqueness(t *testing.T) {
	f := newUserServiceFixture()

	taken := f.admin.Username
	f.users.GetByUsernameFunc = func(ctx context.Context, username string) (*model.User, error) {
		if username == taken {
			u := f.admin
			return &u, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	_, err := f.svc.UpdateUser(context.Background(), testAdmin, testClerk.ID, UpdateUserRequest{Username: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	fresh := "brian.k"
	res, err := f.svc.UpdateUser(context.Background(), testAdmin, testClerk.ID, UpdateUserRequest{Username: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "brian.k", res.Username)

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Changes, "username")
}

func TestUpdateUserCannotDemoteSelf(t *testing.T) {
	f := newUserServiceFixture()

	notSuper := false
	_, err := f.svc.UpdateUser(context.Background(), testAdmin, testAdmin.ID, UpdateUserRequest{IsSuperuser: &notSuper})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "your own superuser status")
}

func TestUpdateUserCannotDeactivateSelf(t *testing.T) {
	f := newUserServiceFixture()

	inactive := false
	_, err := f.svc.UpdateUser(context.Background(), testAdmin, testAdmin.ID, UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUserDeactivationRevokesSessions(t *testing.T) {
	f := newUserServiceFixture()

	var revokedFor string
	f.users.DeleteRefreshTokensForUserFunc = func(ctx context.Context, userID string) error {
		revokedFor = userID
		return nil
	}

	inactive := false
	res, err := f.svc.UpdateUser(context.Background(), testAdmin, testClerk.ID, UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, res.IsActive)
	assert.Equal(t, testClerk.ID, revokedFor)

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionUpdateUser, entries[0].Action)
	assert.Contains(t, entries[0].Changes, "is_active")
}

func TestUpdateUserNoChangesSkipsWrite(t *testing.T) {
	f := newUserServiceFixture()

	updates := 0
	f.users.UpdateFunc = func(ctx context.Context, user *model.User) error {
		updates++
		return nil
	}

	sameEmail := testClerk.Email
	_, err := f.svc.UpdateUser(context.Background(), testAdmin, testClerk.ID, UpdateUserRequest{Email: &sameEmail})
	require.NoError(t, err)
	assert.Zero(t, updates)
	assert.Empty(t, f.audit.Entries())
}

func TestDeleteUserGuardsAndRevokes(t *testing.T) {
	f := newUserServiceFixture()

	err := f.svc.DeleteUser(context.Background(), testAdmin, testAdmin.ID)
	assert.ErrorIs(t, err, ErrValidation, "self deletion is refused")

	var revokedFor, deleted string
	f.users.DeleteRefreshTokensForUserFunc = func(ctx context.Context, userID string) error {
		revokedFor = userID
		return nil
	}
	f.users.DeleteFunc = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}

	require.NoError(t, f.svc.DeleteUser(context.Background(), testAdmin, testClerk.ID))
	assert.Equal(t, testClerk.ID, revokedFor)
	assert.Equal(t, testClerk.ID, deleted)

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionDeleteUser, entries[0].Action)
	assert.Equal(t, testClerk.Email, entries[0].EntityLabel)
}

func TestDeleteUserNotFound(t *testing.T) {
	f := newUserServiceFixture()

	err := f.svc.DeleteUser(context.Background(), testAdmin, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
