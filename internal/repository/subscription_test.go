package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/subtrack/subtrack/internal/model"
)

func TestCreateSubscription_OK(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO subscriptions \(name, user_id\)`).
		WithArgs("news", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "version", "created_at"}).
			AddRow(int64(10), int64(0), time.Now()))

	sub := &model.Subscription{Name: "news", UserID: 1}
	require.NoError(t, repo.CreateSubscription(ctx, sub))
	require.Equal(t, int64(10), sub.ID)
	require.Equal(t, int64(0), sub.Version)
}

func TestCreateSubscription_DuplicatePair(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO subscriptions \(name, user_id\)`).
		WithArgs("news", int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateSubscription(ctx, &model.Subscription{Name: "news", UserID: 1})
	require.ErrorIs(t, err, ErrSubscriptionExists)
}

func TestCreateSubscription_MissingOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO subscriptions \(name, user_id\)`).
		WithArgs("news", int64(404)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.CreateSubscription(ctx, &model.Subscription{Name: "news", UserID: 404})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetSubscriptionByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`FROM subscriptions\s+WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "user_id", "version", "created_at"}).
			AddRow(int64(10), "news", int64(1), int64(0), time.Now()))

	sub, err := repo.GetSubscriptionByID(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "news", sub.Name)

	mock.ExpectQuery(`FROM subscriptions\s+WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetSubscriptionByID(ctx, 99)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestGetSubscriptionByOwnerAndName(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`WHERE user_id = \$1 AND name = \$2`).
		WithArgs(int64(1), "news").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "user_id", "version", "created_at"}).
			AddRow(int64(10), "news", int64(1), int64(0), time.Now()))

	sub, err := repo.GetSubscriptionByOwnerAndName(ctx, 1, "news")
	require.NoError(t, err)
	require.Equal(t, int64(10), sub.ID)

	mock.ExpectQuery(`WHERE user_id = \$1 AND name = \$2`).
		WithArgs(int64(1), "absent").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetSubscriptionByOwnerAndName(ctx, 1, "absent")
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestListSubscriptionsByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(`FROM subscriptions\s+WHERE user_id = \$1\s+ORDER BY id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "user_id", "version", "created_at"}).
			AddRow(int64(10), "news", int64(1), int64(0), now).
			AddRow(int64(11), "music", int64(1), int64(0), now))

	subs, err := repo.ListSubscriptionsByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "news", subs[0].Name)

	// Unknown owner yields an empty slice, not an error.
	mock.ExpectQuery(`FROM subscriptions\s+WHERE user_id = \$1\s+ORDER BY id`).
		WithArgs(int64(77)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "user_id", "version", "created_at"}))

	subs, err = repo.ListSubscriptionsByOwner(ctx, 77)
	require.NoError(t, err)
	require.NotNil(t, subs)
	require.Empty(t, subs)
}

func TestDeleteSubscription_OK(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1 AND user_id = \$2 AND version = \$3`).
		WithArgs(int64(10), int64(1), int64(0)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteSubscription(ctx, 1, 10, 0))
}

func TestDeleteSubscription_OwnerMismatchIsNoop(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1 AND user_id = \$2 AND version = \$3`).
		WithArgs(int64(10), int64(2), int64(0)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery(`SELECT user_id, version FROM subscriptions WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "version"}).AddRow(int64(1), int64(0)))

	require.NoError(t, repo.DeleteSubscription(ctx, 2, 10, 0))
}

func TestDeleteSubscription_StaleVersion(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1 AND user_id = \$2 AND version = \$3`).
		WithArgs(int64(10), int64(1), int64(0)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery(`SELECT user_id, version FROM subscriptions WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "version"}).AddRow(int64(1), int64(3)))

	err := repo.DeleteSubscription(ctx, 1, 10, 0)
	require.ErrorIs(t, err, ErrVersionConflict)
}

func TestDeleteSubscription_ConcurrentlyRemoved(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1 AND user_id = \$2 AND version = \$3`).
		WithArgs(int64(10), int64(1), int64(0)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery(`SELECT user_id, version FROM subscriptions WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnError(pgx.ErrNoRows)

	require.NoError(t, repo.DeleteSubscription(ctx, 1, 10, 0))
}

func TestTopSubscriptionNames(t *testing.T) {
	repo, mock := newMockRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`GROUP BY name\s+ORDER BY COUNT\(\*\) DESC\s+LIMIT \$1`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).
			AddRow("news").
			AddRow("music").
			AddRow("sports"))

	names, err := repo.TopSubscriptionNames(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"news", "music", "sports"}, names)
}
