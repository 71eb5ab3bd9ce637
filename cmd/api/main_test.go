package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"scoreservice/internal/api/handler"
	"scoreservice/internal/interfaces"
	"scoreservice/internal/pkg/caching"
	"scoreservice/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseOrigins(""))
	assert.Equal(t, []string{"*"}, parseOrigins("  "))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, parseOrigins("https://a.example,https://b.example"))
}

func TestNewRedisCacheClient(t *testing.T) {
	client, err := newRedisCacheClient(&Options{
		RedisCache:        "redis://127.0.0.1:1/0",
		ClusterRedisCache: "redis://127.0.0.1:7000?addr=127.0.0.1:7001",
	})
	require.NoError(t, err)
	defer client.Close()

	cluster, ok := client.(*redis.ClusterClient)
	require.True(t, ok, "got %T", client)
	assert.ElementsMatch(t, []string{"127.0.0.1:7000", "127.0.0.1:7001"}, cluster.Options().Addrs)

	_, err = newRedisCacheClient(&Options{ClusterRedisCache: "mysql://nope"})
	assert.Error(t, err)

	// nothing listens on port 1
	client, err = newRedisCacheClient(&Options{RedisCache: "redis://127.0.0.1:1/0"})
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNewContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"username":"adrian","mode":"easy","score":1.0}]`), 0o600))

	container := NewContainer(context.Background(), &Options{
		ScoresFile:      path,
		NormalizeStored: true,
		RedisCache:      "redis://127.0.0.1:1/0",
	})
	defer container.Shutdown() //nolint:errcheck

	_, err := do.Invoke[caching.Cache](container)
	require.NoError(t, err, "an unreachable redis falls back to the local cache")

	_, err = do.Invoke[interfaces.Limiter](container)
	assert.Error(t, err, "no limiter without --redis-limiter")

	service, err := do.Invoke[*services.ServiceScore](container)
	require.NoError(t, err)
	scores, err := service.GetUserScoresByMode(context.Background(), "adrian", "e")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Easy", scores[0].Mode)

	router, err := handler.New(&handler.Config{Container: container, Origins: parseOrigins("")})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/scores/adrian", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), `"score":1.0`)
}
