package handlers

import (
	"net/http"
	"testing"

	"escapenote-server/db/dbtest"
	"escapenote-server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCafesPagination(t *testing.T) {
	s := newTestServer(t)
	for i, id := range []string{"a", "b", "c"} {
		dbtest.AddCafe(t, s.db, model.Cafe{CafeID: id, Name: id, CreatedAt: dbtest.CreatedAt(i)})
	}

	rec := s.do(http.MethodGet, "/cafes?take=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[pageResponse[model.Cafe]](t, rec)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].CafeID)
	assert.Equal(t, "b", page.Items[1].CafeID)
	assert.True(t, page.PageInfo.HasNextPage)
	require.NotNil(t, page.PageInfo.StartCursor)
	assert.Equal(t, "c", *page.PageInfo.StartCursor)
	require.NotNil(t, page.PageInfo.EndCursor)
	assert.Equal(t, "b", *page.PageInfo.EndCursor)

	rec = s.do(http.MethodGet, "/cafes?take=2&cursor="+*page.PageInfo.EndCursor, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[pageResponse[model.Cafe]](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].CafeID)
	assert.False(t, page.PageInfo.HasNextPage)
	assert.Nil(t, page.PageInfo.EndCursor)

	rec = s.do(http.MethodGet, "/cafes?sort=name&order=asc&take=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[pageResponse[model.Cafe]](t, rec)
	assert.Equal(t, "a", page.Items[0].CafeID)
}

func TestGetCafesBadRequests(t *testing.T) {
	s := newTestServer(t)
	dbtest.AddCafe(t, s.db, model.Cafe{CafeID: "a", Name: "a"})

	for _, path := range []string{
		"/cafes?sort=password",
		"/cafes?order=sideways",
		"/cafes?take=-1",
		"/cafes?take=abc",
		"/cafes?cursor=missing",
	} {
		rec := s.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}

	rec := s.do(http.MethodGet, "/cafes", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCafesEmptyPage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/cafes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pageInfo":{"startCursor":null,"endCursor":null,"hasNextPage":false},"items":[]}`, rec.Body.String())
}

func TestCafeDetailSavedAndViews(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	alice := dbtest.AddUser(t, s.db, "alice")
	token := s.accessToken(alice)

	rec := s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/save", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true\n", rec.Body.String())

	rec = s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/save", nil, token)
	assert.Equal(t, "false\n", rec.Body.String())

	rec = s.do(http.MethodGet, "/cafes/"+cafe.CafeID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.Cafe](t, rec).Saved)

	rec = s.do(http.MethodGet, "/cafes/"+cafe.CafeID, nil, "")
	stored := decode[model.Cafe](t, rec)
	assert.False(t, stored.Saved)
	// the view is counted after the cafe is read
	assert.Equal(t, 1, stored.View)

	rec = s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/unsave", nil, token)
	assert.Equal(t, "true\n", rec.Body.String())

	rec = s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/save", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/cafes/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
