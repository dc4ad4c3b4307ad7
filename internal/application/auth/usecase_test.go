package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/pkg/jwt"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func newUseCase(repo *userRepoMock) *AuthUseCase {
	uc := NewAuthUseCase(repo, JWTConfig{Secret: "secreto", ExpMinutes: 10, Issuer: "despachos-api"})
	uc.cost = bcrypt.MinCost
	return uc
}

func TestRegisterUser_OK(t *testing.T) {
	repo := &userRepoMock{}
	repo.On("FindByEmail", mock.Anything, "ana@bodega.co").Return(nil, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ana@bodega.co" && u.Role == entity.RoleDespachador &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("clave-segura")) == nil
	})).Return(nil).Once()

	out, err := newUseCase(repo).RegisterUser(context.Background(), dto.RegisterRequest{
		Email: " Ana@Bodega.co ", Password: "clave-segura", Role: entity.RoleDespachador,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@bodega.co", out.Email)
	assert.Equal(t, "ana@bodega.co", out.Name)
	repo.AssertExpectations(t)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := &userRepoMock{}
	repo.On("FindByEmail", mock.Anything, "ana@bodega.co").Return(&entity.User{ID: "1"}, nil).Once()

	_, err := newUseCase(repo).RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@bodega.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	repo := &userRepoMock{}
	_, err := newUseCase(repo).RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "clave-segura", Role: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{ID: "u-1", Email: "ana@bodega.co", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: "active"}

	t.Run("credenciales correctas", func(t *testing.T) {
		repo := &userRepoMock{}
		repo.On("FindByEmail", mock.Anything, "ana@bodega.co").Return(user, nil).Once()

		out, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: "ana@bodega.co", Password: "clave-segura"})
		require.NoError(t, err)

		userID, role, err := jwt.Parse("secreto", out.Token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", userID)
		assert.Equal(t, entity.RoleAdmin, role)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		repo := &userRepoMock{}
		repo.On("FindByEmail", mock.Anything, "ana@bodega.co").Return(user, nil).Once()

		_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: "ana@bodega.co", Password: "otra"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		repo := &userRepoMock{}
		repo.On("FindByEmail", mock.Anything, "x@bodega.co").Return(nil, nil).Once()

		_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: "x@bodega.co", Password: "clave"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("usuario inactivo", func(t *testing.T) {
		inactive := *user
		inactive.Status = "inactive"
		repo := &userRepoMock{}
		repo.On("FindByEmail", mock.Anything, "ana@bodega.co").Return(&inactive, nil).Once()

		_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: "ana@bodega.co", Password: "clave-segura"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
