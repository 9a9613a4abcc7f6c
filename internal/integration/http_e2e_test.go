//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "daleel/internal/adapters/http_server"
	"daleel/internal/adapters/imagecheck"
	redisad "daleel/internal/adapters/redis"
	"daleel/internal/app"
	"daleel/internal/directory"
	"daleel/internal/domain"
	"daleel/internal/render"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	rdb := redisad.NewClient(fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp")), "", 0)
	require.NoError(t, pool.Retry(func() error {
		return rdb.Ping(context.Background()).Err()
	}))
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// images serves every doctor photo except doctor 102's.
func images(t *testing.T) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/102.png") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestE2E_BrowseProbeAndReview(t *testing.T) {
	ctx := context.Background()
	rdb := startRedis(t)
	imgs := images(t)

	recs := make([]domain.DoctorRecord, len(directory.Seed))
	copy(recs, directory.Seed)
	for i := range recs {
		recs[i].ImageURL = fmt.Sprintf("%s/%d.png", imgs.URL, recs[i].ID)
	}
	dir, err := directory.New(recs)
	require.NoError(t, err)

	cache := redisad.NewCache(rdb)
	probe := app.NewProbeService(imagecheck.New(50), cache, 60)
	n, err := probe.ProbeAll(ctx, dir.All(), 2)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{
		Q:       app.NewDirectoryService(dir, cache, ""),
		Reviews: app.NewReviewService(redisad.NewStore(rdb)),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}

	// first visit issues the visitor cookie
	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, 5, doc.Find("article.doctor-card").Length())
	assert.Equal(t, render.PlaceholderImage, doc.Find("#doctor-102 img").AttrOr("src", ""))
	assert.NotEqual(t, render.PlaceholderImage, doc.Find("#doctor-101 img").AttrOr("src", ""))

	// the form post redirects back to the page, which now shows the review
	resp, err = client.PostForm(ts.URL+"/doctors/104/reviews", url.Values{
		"text": {"تجربة رائعة جدا"},
		"city": {"النجف"},
	})
	require.NoError(t, err)
	doc, err = goquery.NewDocumentFromReader(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "تجربة رائعة جدا", doc.Find("#doctor-104 .review-text").Text())
	assert.Equal(t, "saved", doc.Find("#notice").AttrOr("data-kind", ""))

	// the list is a JSON array under the visitor's key
	keys, err := rdb.Keys(ctx, "visitor:*:reviews_104").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	raw, err := rdb.Get(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, `[{"text":"تجربة رائعة جدا"`), raw)

	// a fresh visitor sees nothing
	resp, err = http.Get(ts.URL + "/v1/doctors/104/reviews")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"count":0`)
}
