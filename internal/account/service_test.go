package account

import (
	"context"
	"testing"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(storage.NewMemoryStore())
}

func testRegistration() Registration {
	return Registration{
		Email:          "A@B.com",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Phone:          "555-0101",
		Password:       "correct horse",
		MarketingOptIn: true,
	}
}

func TestCreatePendingUser_IssuesCode(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	issued, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)

	assert.Len(t, issued.Code, 6)
	assert.Greater(t, issued.ExpiresAt, time.Now().UnixMilli())
}

func TestCreatePendingUser_BlockedByVerifiedUser(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	issued, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)
	ok, err := s.Verify(ctx, "a@b.com", issued.Code)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.CreatePendingUser(ctx, testRegistration())
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestCreatePendingUser_ReplacesPriorPending(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	first, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)
	second, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)

	// Old code no longer verifies (unless the two codes collide)
	if first.Code != second.Code {
		ok, err := s.Verify(ctx, "a@b.com", first.Code)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	ok, err := s.Verify(ctx, "a@b.com", second.Code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_WrongCode(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	issued, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)

	wrong := "000000"
	if issued.Code == wrong {
		wrong = "000001"
	}
	ok, err := s.Verify(ctx, "a@b.com", wrong)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_NoPendingRecord(t *testing.T) {
	s := newTestService()

	ok, err := s.Verify(context.Background(), "ghost@b.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_ExpiredCodeFailsEvenIfMatching(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	issued, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)

	// Jump past the 15-minute expiry
	s.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	ok, err := s.Verify(ctx, "a@b.com", issued.Code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResend_OldCodeFailsNewCodeSucceeds(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	first, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)

	resent, err := s.ResendVerificationCode(ctx, "a@b.com")
	require.NoError(t, err)

	if first.Code != resent.Code {
		ok, err := s.Verify(ctx, "a@b.com", first.Code)
		require.NoError(t, err)
		assert.False(t, ok, "old code must not verify after resend")
	}

	ok, err := s.Verify(ctx, "a@b.com", resent.Code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResend_CreatesStubForUnknownEmail(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	issued, err := s.ResendVerificationCode(ctx, "new@b.com")
	require.NoError(t, err)

	ok, err := s.Verify(ctx, "new@b.com", issued.Code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignIn_Flow(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	reg := testRegistration()
	issued, err := s.CreatePendingUser(ctx, reg)
	require.NoError(t, err)

	// resend, then verify with the resent code
	resent, err := s.ResendVerificationCode(ctx, reg.Email)
	require.NoError(t, err)
	ok, err := s.Verify(ctx, reg.Email, resent.Code)
	require.NoError(t, err)
	require.True(t, ok)
	_ = issued

	user, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.Verified)
	assert.Equal(t, "Ada", user.FirstName)

	result, err := s.SignIn(ctx, "a@b.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, SignInOK, result.Status)
	require.NotNil(t, result.User)
	assert.Equal(t, "a@b.com", result.User.Email)
}

func TestSignIn_Failures(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	result, err := s.SignIn(ctx, "ghost@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, SignInNoAccount, result.Status)
	assert.Equal(t, "No account found for this email.", result.Status.Reason())

	issued, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)
	ok, err := s.Verify(ctx, "a@b.com", issued.Code)
	require.NoError(t, err)
	require.True(t, ok)

	result, err = s.SignIn(ctx, "a@b.com", "wrong password")
	require.NoError(t, err)
	assert.Equal(t, SignInInvalidCredentials, result.Status)
	assert.Nil(t, result.User)
}

func TestCurrentUser_PointerLifecycle(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	current, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	issued, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)
	ok, err := s.Verify(ctx, "a@b.com", issued.Code)
	require.NoError(t, err)
	require.True(t, ok)

	user, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser(ctx, user))

	current, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "a@b.com", current.Email)

	require.NoError(t, s.SetCurrentUser(ctx, nil))
	current, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSaveSubscriptionConsent_Appends(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	err := s.SaveSubscriptionConsent(ctx, SubscriptionConsent{
		Email: "A@B.com", MarketingOptIn: true, Timestamp: time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	err = s.SaveSubscriptionConsent(ctx, SubscriptionConsent{
		Email: "a@b.com", MarketingOptIn: false, Timestamp: time.Now().UnixMilli(),
	})
	require.NoError(t, err)
}

func TestPasswordsAreNotStoredInPlainText(t *testing.T) {
	store := storage.NewMemoryStore()
	s := NewService(store)
	ctx := context.Background()

	_, err := s.CreatePendingUser(ctx, testRegistration())
	require.NoError(t, err)

	raw, err := store.Get(ctx, storage.KeyPendingUsers)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct horse")
}
