package handlers

import (
	"net/http"
	"testing"

	"escapenote-server/cache"
	"escapenote-server/db/dbtest"
	"escapenote-server/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRecommendCache(t *testing.T) (func(*Dependencies), *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return func(deps *Dependencies) {
		deps.RecommendCache = cache.NewRecommendCache(client, cache.RecommendExpiration)
	}, server
}

func TestRecommendCafesCached(t *testing.T) {
	option, server := withRecommendCache(t)
	s := newTestServer(t, option)
	popular := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape", View: 150})
	dbtest.AddCafe(t, s.db, model.Cafe{Name: "Quiet Room", View: 3})

	rec := s.do(http.MethodGet, "/recommend-cafes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cafes := decode[[]model.Cafe](t, rec)
	require.Len(t, cafes, 1)
	assert.Equal(t, popular.CafeID, cafes[0].CafeID)
	assert.True(t, server.Exists("recommend:cafes"))

	// served from the cache until it is flushed
	require.NoError(t, s.db.Model(&model.Cafe{}).Where("id = ?", popular.CafeID).Update("view", 0).Error)
	rec = s.do(http.MethodGet, "/recommend-cafes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Cafe](t, rec), 1)

	rec = s.do(http.MethodPost, "/resetTestDatabase", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, server.Exists("recommend:cafes"))

	rec = s.do(http.MethodGet, "/recommend-cafes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.Cafe](t, rec))
}

func TestRecommendThemesWithoutCache(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	dbtest.AddTheme(t, s.db, model.Theme{CafeID: cafe.CafeID, Name: "Haunted", View: 300})

	rec := s.do(http.MethodGet, "/recommend-themes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	themes := decode[[]model.Theme](t, rec)
	require.Len(t, themes, 1)
	assert.Equal(t, "Haunted", themes[0].Name)
}

func TestRecommendCacheDown(t *testing.T) {
	option, server := withRecommendCache(t)
	s := newTestServer(t, option)
	dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape", View: 150})
	server.Close()

	rec := s.do(http.MethodGet, "/recommend-cafes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Cafe](t, rec), 1)
}
