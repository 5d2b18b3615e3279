package sqlite

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravchenko/accountd/internal/apperrors"
	"github.com/mkravchenko/accountd/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	t.Run("create user ok", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		user, err := r.CreateUser(t.Context(), "testuser", "hashedpassword123")

		require.NoError(t, err)
		assert.Greater(t, user.ID, int64(0), "ID should be generated")
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, "hashedpassword123", user.PasswordHash)
		assert.WithinDuration(t, time.Now(), user.CreatedAt, time.Second, "CreatedAt should be recent")
	})

	t.Run("create user duplicate username fails", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		_, err := r.CreateUser(t.Context(), "duplicateuser", "hashedpassword123")
		require.NoError(t, err)

		_, err = r.CreateUser(t.Context(), "duplicateuser", "anotherhashedpassword")

		assert.Error(t, err, "should fail on duplicate username")
		assert.ErrorIs(t, err, apperrors.ErrUsernameTaken, "must return the well defined conflict error")
	})

	t.Run("concurrent duplicate inserts leave one winner", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		const attempts = 8
		errs := make([]error, attempts)

		var wg sync.WaitGroup
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = r.CreateUser(t.Context(), "raceuser", "hashedpassword123")
			}(i)
		}
		wg.Wait()

		var created, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				created++
			default:
				require.ErrorIs(t, err, apperrors.ErrUsernameTaken)
				conflicts++
			}
		}

		assert.Equal(t, 1, created, "exactly one insert should win")
		assert.Equal(t, attempts-1, conflicts)
	})

	t.Run("get user by username ok", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		created, err := r.CreateUser(t.Context(), "findme", "hashedpassword123")
		require.NoError(t, err)

		got, err := r.GetUserByUsername(t.Context(), "findme")

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Username, got.Username)
		assert.Equal(t, created.PasswordHash, got.PasswordHash)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("get user by username not found", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		_, err := r.GetUserByUsername(t.Context(), "ghost")

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("get user exact match only", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		_, err := r.CreateUser(t.Context(), "CaseUser", "hashedpassword123")
		require.NoError(t, err)

		_, err = r.GetUserByUsername(t.Context(), "caseuser")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "username lookup is case sensitive")
	})

	t.Run("list users empty", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		users, err := r.ListUsers(t.Context())

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("list users newest first", func(t *testing.T) {
		r := &UserRepo{DB: testutil.OpenDB(t)}

		for _, username := range []string{"user-one", "user-two", "user-three"} {
			_, err := r.CreateUser(t.Context(), username, "hashedpassword123")
			require.NoError(t, err)
		}

		users, err := r.ListUsers(t.Context())

		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "user-three", users[0].Username)
		assert.Equal(t, "user-two", users[1].Username)
		assert.Equal(t, "user-one", users[2].Username)
	})
}
