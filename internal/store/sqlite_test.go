package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-intel/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testUser(email, phone string) *model.User {
	now := time.Now().UTC().Truncate(time.Second)
	expires := now.Add(10 * time.Minute)
	return &model.User{
		ID:                uuid.New().String(),
		Email:             email,
		Phone:             phone,
		Name:              "Asha",
		PasswordHash:      "hash",
		PreferredLanguage: "en",
		OTP:               "123456",
		OTPExpires:        &expires,
		CreatedAt:         now,
	}
}

func TestSQLiteUserLifecycle(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	user := testUser("asha@example.com", "")
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.Phone)
	assert.Equal(t, "123456", got.OTP)
	assert.False(t, got.IsVerified)
	require.NotNil(t, got.OTPExpires)
	assert.WithinDuration(t, *user.OTPExpires, *got.OTPExpires, time.Second)

	// Verification clears the OTP.
	require.NoError(t, s.MarkUserVerified(ctx, user.ID))
	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Empty(t, got.OTP)
	assert.Nil(t, got.OTPExpires)

	require.NoError(t, s.UpdateUserLanguage(ctx, user.ID, "ta"))
	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ta", got.PreferredLanguage)
}

func TestSQLiteGetUserByIdentifier(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	byEmail := testUser("a@example.com", "")
	byPhone := testUser("", "+911234567890")
	require.NoError(t, s.CreateUser(ctx, byEmail))
	require.NoError(t, s.CreateUser(ctx, byPhone))

	got, err := s.GetUserByIdentifier(ctx, "a@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, got.ID)

	got, err = s.GetUserByIdentifier(ctx, "", "+911234567890")
	require.NoError(t, err)
	assert.Equal(t, byPhone.ID, got.ID)

	_, err = s.GetUserByIdentifier(ctx, "nobody@example.com", "")
	assert.ErrorIs(t, err, ErrNotFound)

	// Both identifiers empty must not match the NULL-email rows.
	_, err = s.GetUserByIdentifier(ctx, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDuplicateEmail(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("dup@example.com", "")))
	err := s.CreateUser(ctx, testUser("dup@example.com", ""))
	assert.Error(t, err)
}

func TestSQLiteNotFound(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.MarkUserVerified(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, s.UpdateUserLanguage(ctx, "missing", "ta"), ErrNotFound)
}

func TestSQLiteChatHistory(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	user := testUser("chat@example.com", "")
	require.NoError(t, s.CreateUser(ctx, user))

	base := time.Now().UTC().Truncate(time.Second)
	for i := range 3 {
		rec := &model.ChatRecord{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Message:   "question",
			Response:  "answer",
			Language:  "en",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.InsertChat(ctx, rec))
	}

	records, err := s.ListChatHistory(ctx, user.ID, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))

	records, err = s.ListChatHistory(ctx, "other-user", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
