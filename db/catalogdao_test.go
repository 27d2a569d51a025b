package db_test

import (
	"context"
	"testing"

	"escapenote-server/db"
	"escapenote-server/db/dbtest"
	"escapenote-server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFaq(t *testing.T) {
	ctx := context.Background()
	database := dbtest.NewTestDB(t)
	faqList := []model.Faq{
		{FaqID: "second", Question: "How do I reset my password?", Position: 2, Status: model.StatusPublished},
		{FaqID: "first", Question: "How do I write a review?", Position: 1, Status: model.StatusPublished},
		{FaqID: "hidden", Question: "How do I hide?", Position: 0, Status: model.StatusDraft},
	}
	require.NoError(t, database.Create(&faqList).Error)
	catalogDAO := db.NewCatalogDAO(database)

	result, err := catalogDAO.ListFaq(ctx, "", "", false)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "first", result[0].FaqID)

	result, err = catalogDAO.ListFaq(ctx, "password", "", false)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "second", result[0].FaqID)

	_, err = catalogDAO.ListFaq(ctx, "", "answer", false)
	assert.ErrorIs(t, err, db.ErrInvalidSort)
}

func TestListGenres(t *testing.T) {
	database := dbtest.NewTestDB(t)
	require.NoError(t, database.Create(&[]model.Genre{{GenreID: "b", Name: "Horror"}, {GenreID: "a", Name: "Comic"}}).Error)

	genres, err := db.NewCatalogDAO(database).ListGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "a", genres[0].GenreID)
}
