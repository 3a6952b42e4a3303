package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vip-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/password"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testMaker() jwt.Maker {
	return jwt.NewMaker("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	users := new(UsersMock)
	var registered models.User
	users.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) { registered = args.Get(1).(models.User) }).
		Return("uid-1", nil)
	svc := New(users, testMaker())

	uid, err := svc.Register(context.Background(), "ravi@example.com", "+91 90000 00001", "ravi", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	assert.Equal(t, "ravi", registered.Username)
	assert.Equal(t, "user", registered.Role)
	// Пароль сохраняется только в виде bcrypt-хэша.
	assert.NotEqual(t, "secret123", registered.PasswordHash)
	assert.NoError(t, password.CompareHash(registered.PasswordHash, "secret123"))
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	stored := &models.User{
		UID:          "uid-1",
		Username:     "ravi",
		PasswordHash: hash,
		Role:         "user",
	}

	tests := []struct {
		name     string
		username string
		password string
		user     *models.User
		repoErr  error
		wantErr  error
	}{
		{"успешный вход", "ravi", "secret123", stored, nil, nil},
		{"неверный пароль", "ravi", "wrong", stored, nil, ErrInvalidCredentials},
		{"пользователь не найден", "ghost", "secret123", nil, errors.New("user not found"), ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			users.On("GetUserByUsername", mock.Anything, tt.username).Return(tt.user, tt.repoErr)
			svc := New(users, testMaker())

			token, role, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user", role)

			claims, err := svc.ValidateToken(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, "uid-1", claims.UserUID)
			assert.Equal(t, "ravi", claims.Username)
		})
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := New(new(UsersMock), testMaker())
	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
