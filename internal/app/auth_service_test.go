package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvboost/internal/model"
	"cvboost/internal/pkg/jwtutil"
)

type fakeUserStore struct {
	byEmail map[string]*model.User
	byID    map[uint]*model.User
	nextID  uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: map[string]*model.User{},
		byID:    map[uint]*model.User{},
		nextID:  1,
	}
}

func (f *fakeUserStore) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) GetByID(id uint) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserStore) Count() (int64, error) {
	return int64(len(f.byID)), nil
}

func newAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, "test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	result, err := svc.Register(RegisterInput{
		Email:    "  Alice@Example.COM ",
		Password: "supersecret",
		FullName: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, model.RoleUser, result.User.Role)
	assert.Zero(t, result.User.CreditsCV)
	assert.Zero(t, result.User.CreditsChat)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, string(model.RoleUser), claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(RegisterInput{Email: "", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Email: "A@B.com", Password: "othersecret"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)

	result, err := svc.Login(LoginInput{Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(LoginInput{Email: "a@b.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(LoginInput{Email: "nobody@b.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
