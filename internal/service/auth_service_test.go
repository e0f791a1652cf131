package service

import (
	"context"
	"testing"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/config"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users      map[uuid.UUID]*model.User
	byUsername map[string]uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:      make(map[uuid.UUID]*model.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if _, exists := r.byUsername[u.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	id, ok := r.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.users[id], nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, r *stubUserRepo, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	r.users[u.ID] = u
	r.byUsername[username] = u.ID
	return u
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "tesoureiro", "segredo123", "tesoureiro")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "tesoureiro",
		Password: "segredo123",
	}, "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "tesoureiro", resp.User.Role)
}

func TestLogin_MissingCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "tesoureiro", "segredo123", "tesoureiro")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	for _, req := range []dto.LoginRequest{
		{},
		{Username: "tesoureiro"},
		{Password: "segredo123"},
	} {
		_, err := svc.Login(context.Background(), req, "10.0.0.1")
		require.Error(t, err)
		// Missing fields are a validation error, not bad credentials.
		assert.Equal(t, apierror.KindValidation, errKind(t, err))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "operador", "segredo123", "operador")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operador",
		Password: "errada",
	}, "10.0.0.1")
	require.Error(t, err)
	assert.Equal(t, apierror.KindAuth, errKind(t, err))
	assert.ErrorContains(t, err, "credenciais inválidas")
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testAuthConfig(), nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "fantasma",
		Password: "qualquer",
	}, "10.0.0.1")
	require.Error(t, err)
	// Same message for bad user and bad password.
	assert.ErrorContains(t, err, "credenciais inválidas")
}

func TestRefresh_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "diretor", "segredo123", "diretor")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "diretor",
		Password: "segredo123",
	}, "10.0.0.1")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "diretor", refreshed.User.Username)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testAuthConfig(), nil)

	_, err := svc.Refresh(context.Background(), "isto-não-é-um-jwt")
	require.Error(t, err)
	assert.Equal(t, apierror.KindAuth, errKind(t, err))
}

func TestRefresh_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "antigo", "segredo123", "operador")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "antigo",
		Password: "segredo123",
	}, "10.0.0.1")
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apierror.KindAuth, errKind(t, err))
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "diretor", "segredo123", "diretor")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "diretor",
		Name:     "Outro Diretor",
		Password: "segredo456",
		Role:     "diretor",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, errKind(t, err))
}

func TestMe(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "tesoureiro", "segredo123", "tesoureiro")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	resp, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "tesoureiro", resp.Username)
	assert.Equal(t, "tesoureiro", resp.Role)

	// Deactivated accounts are invisible to Me even with a valid token.
	u.Active = false
	_, err = svc.Me(context.Background(), u.ID)
	assert.Equal(t, apierror.KindNotFound, errKind(t, err))

	_, err = svc.Me(context.Background(), uuid.New())
	assert.Equal(t, apierror.KindNotFound, errKind(t, err))
}

func TestDeactivateUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "saiu", "segredo123", "operador")
	svc := NewAuthService(repo, testAuthConfig(), nil)

	require.NoError(t, svc.DeactivateUser(context.Background(), u.ID))
	assert.False(t, repo.users[u.ID].Active)

	err := svc.DeactivateUser(context.Background(), uuid.New())
	assert.Equal(t, apierror.KindNotFound, errKind(t, err))
}
