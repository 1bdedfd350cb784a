package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/library-management/internal/user/domain"
	"github.com/tair/library-management/pkg/auth"
)

// userRepoMock implements domain.UserRepository with per-test functions.
// notFound covers the common case where every lookup misses.
type userRepoMock struct {
	createFn         func(user *domain.User) error
	findByIDFn       func(id uint) (*domain.User, error)
	findByUsernameFn func(username string) (*domain.User, error)
	findByEmailFn    func(email string) (*domain.User, error)
	updateFn         func(user *domain.User) error
}

func notFound() *userRepoMock {
	return &userRepoMock{
		findByUsernameFn: func(string) (*domain.User, error) { return nil, domain.ErrUserNotFound },
		findByEmailFn:    func(string) (*domain.User, error) { return nil, domain.ErrUserNotFound },
	}
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(user)
}
func (m *userRepoMock) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return m.findByIDFn(id)
}
func (m *userRepoMock) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.findByUsernameFn(username)
}
func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findByEmailFn(email)
}
func (m *userRepoMock) FindAll(ctx context.Context, role string, limit, offset int) ([]domain.User, error) {
	return nil, nil
}
func (m *userRepoMock) Update(ctx context.Context, user *domain.User) error {
	return m.updateFn(user)
}
func (m *userRepoMock) Delete(ctx context.Context, id uint) error  { return nil }
func (m *userRepoMock) Count(ctx context.Context) (int64, error)   { return 0, nil }
func (m *userRepoMock) CountByRole(ctx context.Context, role string) (int64, error) {
	return 0, nil
}
func (m *userRepoMock) CountActive(ctx context.Context) (int64, error) { return 0, nil }

func TestRegisterUser_Validation(t *testing.T) {
	h := NewRegisterUserHandler(notFound())

	cases := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing username", RegisterUserCommand{Email: "a@b.c", Password: "secret1"}},
		{"missing email", RegisterUserCommand{Username: "ana", Password: "secret1"}},
		{"short password", RegisterUserCommand{Username: "ana", Email: "a@b.c", Password: "12345"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := notFound()
	repo.findByUsernameFn = func(username string) (*domain.User, error) {
		return &domain.User{ID: 1, Username: username}, nil
	}

	h := NewRegisterUserHandler(repo)
	_, err := h.Handle(context.Background(), RegisterUserCommand{Username: "ana", Email: "a@b.c", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := notFound()
	repo.findByEmailFn = func(email string) (*domain.User, error) {
		return &domain.User{ID: 1, Email: email}, nil
	}

	h := NewRegisterUserHandler(repo)
	_, err := h.Handle(context.Background(), RegisterUserCommand{Username: "ana", Email: "a@b.c", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterUser_InvalidRole(t *testing.T) {
	h := NewRegisterUserHandler(notFound())
	_, err := h.Handle(context.Background(), RegisterUserCommand{Username: "ana", Email: "a@b.c", Password: "secret1", Role: "librarian"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegisterUser_StoresHashNotPlaintext(t *testing.T) {
	repo := notFound()
	var created *domain.User
	repo.createFn = func(user *domain.User) error {
		created = user
		return nil
	}

	h := NewRegisterUserHandler(repo)
	user, err := h.Handle(context.Background(), RegisterUserCommand{Username: "ana", Email: "a@b.c", Password: "secret1"})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "secret1"))
}

func TestLoginUser_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	repo := notFound()
	h := NewLoginUserHandler(repo)

	_, unknownErr := h.Handle(context.Background(), LoginUserCommand{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)

	repo.findByUsernameFn = func(username string) (*domain.User, error) {
		return &domain.User{ID: 1, Username: username, PasswordHash: hash, Role: domain.RoleMember, IsActive: true}, nil
	}
	_, wrongErr := h.Handle(context.Background(), LoginUserCommand{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, wrongErr, domain.ErrInvalidCredentials)
}

func TestLoginUser_DisabledAccount(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	repo := notFound()
	repo.findByUsernameFn = func(username string) (*domain.User, error) {
		return &domain.User{ID: 1, Username: username, PasswordHash: hash, Role: domain.RoleMember}, nil
	}

	h := NewLoginUserHandler(repo)
	_, loginErr := h.Handle(context.Background(), LoginUserCommand{Username: "ana", Password: "secret1"})
	assert.ErrorIs(t, loginErr, domain.ErrAccountDisabled)
}

func TestLoginUser_ReturnsToken(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	repo := notFound()
	repo.findByUsernameFn = func(username string) (*domain.User, error) {
		return &domain.User{ID: 7, Username: username, PasswordHash: hash, Role: domain.RoleAdmin, IsActive: true}, nil
	}

	h := NewLoginUserHandler(repo)
	resp, loginErr := h.Handle(context.Background(), LoginUserCommand{Username: "ana", Password: "secret1"})

	require.NoError(t, loginErr)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, uint(7), resp.User.ID)
}

func TestChangeRole(t *testing.T) {
	t.Run("rejects unknown role", func(t *testing.T) {
		h := NewChangeRoleHandler(notFound())
		_, err := h.Handle(context.Background(), ChangeRoleCommand{UserID: 1, Role: "superuser"})
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("promotes member to admin", func(t *testing.T) {
		repo := notFound()
		repo.findByIDFn = func(id uint) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleMember}, nil
		}
		var updated *domain.User
		repo.updateFn = func(user *domain.User) error {
			updated = user
			return nil
		}

		h := NewChangeRoleHandler(repo)
		user, err := h.Handle(context.Background(), ChangeRoleCommand{UserID: 3, Role: domain.RoleAdmin})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})
}

func TestToggleActive(t *testing.T) {
	repo := notFound()
	repo.findByIDFn = func(id uint) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleMember, IsActive: true}, nil
	}
	var updated *domain.User
	repo.updateFn = func(user *domain.User) error {
		updated = user
		return nil
	}

	h := NewToggleActiveHandler(repo)
	user, err := h.Handle(context.Background(), ToggleActiveCommand{UserID: 3, IsActive: false})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, user.IsActive)
}
