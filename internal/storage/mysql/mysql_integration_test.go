//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daleel/internal/app"
	"daleel/internal/domain"
	mysqlstore "daleel/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=daleel",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/daleel?parseTime=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	require.NoError(t, pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStore_MySQL(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	s := mysqlstore.New(db)
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrate is idempotent")

	_, err := s.Get(ctx, "reviews_101")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "reviews_101", "[]"))
	require.NoError(t, s.Set(ctx, "reviews_101", `[{"text":"ممتاز"}]`))
	v, err := s.Get(ctx, "reviews_101")
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"ممتاز"}]`, v)

	svc := app.NewReviewService(s).For("visitor-1")
	_, err = svc.SaveReview(ctx, 102, "تجربة رائعة جدا")
	require.NoError(t, err)
	got := svc.GetReviews(ctx, 102)
	require.Len(t, got, 1)
	assert.Equal(t, "تجربة رائعة جدا", got[0].Text)
}
