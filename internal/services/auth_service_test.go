package services

import (
	"testing"
	"time"

	"gigup_backend/internal/access"
	"gigup_backend/internal/delivery"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/internal/session"
	"gigup_backend/internal/testutil"
	"gigup_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authFixture struct {
	svc      AuthService
	db       *gorm.DB
	sessions *session.Manager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	_, rdb := testutil.NewTestRedis(t)

	sessions := session.NewManager(rdb, "test-secret", time.Hour)
	userRepo := repositories.NewUserRepository()
	verification := newTestVerificationService(delivery.NewEchoDeliverer())

	svc := NewAuthService(userRepo, verification, sessions, access.NewGate(userRepo, sessions)).(*authService)
	svc.hashCost = bcrypt.MinCost

	return &authFixture{svc: svc, db: db, sessions: sessions}
}

func signupRequest(email string) *dto.SignupRequest {
	return &dto.SignupRequest{
		Name:     "Alice",
		Email:    email,
		Phone:    "+1 (555) 123-4567",
		Password: "secret123",
	}
}

func TestAuthService_SignupCreatesUnapprovedUser(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Signup(testContext(), f.db, signupRequest("Alice@Example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)
	assert.NotEmpty(t, resp.VerificationCode, "echo delivery exposes the code")

	user, err := repositories.NewUserRepository().FindByEmail(f.db, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsApproved)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Signup(testContext(), f.db, signupRequest("bob@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Signup(testContext(), f.db, signupRequest("BOB@example.com"))
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestAuthService_LoginRules(t *testing.T) {
	f := newAuthFixture(t)
	pending := testutil.CreateUser(t, f.db, "pending")
	approved := testutil.CreateUser(t, f.db, "approved", testutil.Approved())

	_, _, err := f.svc.Login(testContext(), f.db, &dto.LoginRequest{Email: "nobody@test.com", Password: "x"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, _, err = f.svc.Login(testContext(), f.db, &dto.LoginRequest{Email: approved.Email, Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, _, err = f.svc.Login(testContext(), f.db, &dto.LoginRequest{Email: pending.Email, Password: testutil.TestPassword})
	assert.True(t, apperrors.Is(err, apperrors.ErrPendingApproval))

	token, resp, err := f.svc.Login(testContext(), f.db, &dto.LoginRequest{Email: approved.Email, Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.Equal(t, approved.ID, resp.User.ID)

	sess, err := f.sessions.Resolve(testContext(), token)
	require.NoError(t, err)
	assert.Equal(t, approved.ID, sess.UserID)
}

func TestAuthService_CheckSession(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "alice", testutil.Approved())

	resp, err := f.svc.CheckSession(testContext(), f.db, nil)
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)

	token, sess, err := f.sessions.Establish(testContext(), user)
	require.NoError(t, err)

	resp, err = f.svc.CheckSession(testContext(), f.db, sess)
	require.NoError(t, err)
	assert.True(t, resp.Authenticated)

	require.NoError(t, repositories.NewUserRepository().SetApproved(f.db, user.ID, false))

	resp, err = f.svc.CheckSession(testContext(), f.db, sess)
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)

	_, err = f.sessions.Resolve(testContext(), token)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "alice", testutil.Approved())

	token, sess, err := f.sessions.Establish(testContext(), user)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(testContext(), sess))

	_, err = f.sessions.Resolve(testContext(), token)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "alice", testutil.Approved())

	err := f.svc.ChangePassword(testContext(), f.db, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrWrongCurrentPassword))

	require.NoError(t, f.svc.ChangePassword(testContext(), f.db, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: testutil.TestPassword,
		NewPassword:     "newsecret",
	}))

	_, _, err = f.svc.Login(testContext(), f.db, &dto.LoginRequest{Email: user.Email, Password: "newsecret"})
	assert.NoError(t, err)
}

func TestAuthService_PasswordResetRequestIsGeneric(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "alice", testutil.Approved())

	unknown, err := f.svc.RequestPasswordReset(testContext(), f.db, &dto.PasswordResetRequest{Email: "ghost@test.com"})
	require.NoError(t, err)
	known, err := f.svc.RequestPasswordReset(testContext(), f.db, &dto.PasswordResetRequest{Email: user.Email})
	require.NoError(t, err)

	assert.Equal(t, unknown.Message, known.Message)
	assert.Empty(t, unknown.ResetToken)
	assert.NotEmpty(t, known.ResetToken)
}

func TestAuthService_ResetPasswordDestroysSessions(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "alice", testutil.Approved())

	oldToken, _, err := f.sessions.Establish(testContext(), user)
	require.NoError(t, err)

	reset, err := f.svc.RequestPasswordReset(testContext(), f.db, &dto.PasswordResetRequest{Email: user.Email})
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetPassword(testContext(), f.db, &dto.ResetPasswordRequest{
		Token:       reset.ResetToken,
		NewPassword: "brandnew",
	}))

	_, err = f.sessions.Resolve(testContext(), oldToken)
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, _, err = f.svc.Login(testContext(), f.db, &dto.LoginRequest{Email: user.Email, Password: "brandnew"})
	assert.NoError(t, err)

	err = f.svc.ResetPassword(testContext(), f.db, &dto.ResetPasswordRequest{Token: reset.ResetToken, NewPassword: "again123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidOrExpiredCode))
}
