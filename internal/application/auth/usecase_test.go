package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/accounts-api/pkg/jwt"
)

var testJWTCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 24 * 60,
	Issuer:     "accounts-api-test",
}

// fakeUserRepo repositorio en memoria con asignación de IDs, para tests.
type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id int64) error {
	delete(r.users, id)
	return nil
}

func TestRegister_CreaUsuarioYEmiteToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	user, token, err := uc.Register(dto.SignUpRequest{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)

	assert.Equal(t, "ana@x.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role, "role por defecto es user")
	assert.Positive(t, user.ID, "el store asigna el ID")

	// El password se persiste hasheado con bcrypt, nunca en claro
	stored, _ := repo.GetByEmail("ana@x.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	// El token emitido verifica y devuelve exactamente la identidad
	id, email, role, err := pkgjwt.Parse(testJWTCfg.Secret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "ana@x.com", email)
	assert.Equal(t, entity.RoleUser, role)
}

func TestRegister_EmailDuplicado_RetornaErrEmailAlreadyExists(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, _, err := uc.Register(dto.SignUpRequest{Name: "Ana", Email: "ana@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = uc.Register(dto.SignUpRequest{Name: "Otra", Email: "ana@x.com", Password: "secret456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, _ := repo.List()
	assert.Len(t, list, 1, "no debe crearse un segundo registro")
}

func TestRegister_RespetaRoleExplicito(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	user, _, err := uc.Register(dto.SignUpRequest{
		Name: "Root", Email: "root@x.com", Password: "secret123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, _, err := uc.Register(dto.SignUpRequest{Name: "Ana", Email: "ana@x.com", Password: "secret123"})
	require.NoError(t, err)

	user, token, err := uc.Login(dto.SignInRequest{Email: "ana@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.NotEmpty(t, token)
}

// Email inexistente y password incorrecto fallan con el mismo error: sin oráculo.
func TestLogin_FallosIndistinguibles(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, _, err := uc.Register(dto.SignUpRequest{Name: "Ana", Email: "ana@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, errUnknown := uc.Login(dto.SignInRequest{Email: "nadie@x.com", Password: "secret123"})
	_, _, errWrongPass := uc.Login(dto.SignInRequest{Email: "ana@x.com", Password: "incorrecta1"})

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}
