package handlers

import (
	"net/http"
	"testing"

	"escapenote-server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Escapenote","version":"1.0.0"}`, rec.Body.String())
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found"}`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/cafes", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetGenres(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.db.Create([]model.Genre{{GenreID: "2", Name: "Horror"}, {GenreID: "1", Name: "Adventure"}}).Error)

	rec := s.do(http.MethodGet, "/genre", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	genres := decode[[]model.Genre](t, rec)
	require.Len(t, genres, 2)
	assert.Equal(t, "Adventure", genres[0].Name)
}

func TestGetFaq(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.db.Create([]model.Faq{
		{FaqID: "a", Question: "How do I book a room?", Position: 2, Status: model.StatusPublished},
		{FaqID: "b", Question: "How do I write a review?", Position: 1, Status: model.StatusPublished},
		{FaqID: "c", Question: "Draft question", Position: 0, Status: model.StatusDraft},
	}).Error)

	rec := s.do(http.MethodGet, "/faq", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	faqList := decode[[]model.Faq](t, rec)
	require.Len(t, faqList, 2)
	assert.Equal(t, "b", faqList[0].FaqID)

	rec = s.do(http.MethodGet, "/faq?order=desc", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a", decode[[]model.Faq](t, rec)[0].FaqID)

	rec = s.do(http.MethodGet, "/faq?term=review", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	faqList = decode[[]model.Faq](t, rec)
	require.Len(t, faqList, 1)
	assert.Equal(t, "b", faqList[0].FaqID)

	rec = s.do(http.MethodGet, "/faq?order=up", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/faq?sort=answer", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
