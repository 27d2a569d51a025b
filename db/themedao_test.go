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

func themeIDs(themes []model.Theme) []string {
	ids := make([]string, 0, len(themes))
	for _, theme := range themes {
		ids = append(ids, theme.ThemeID)
	}
	return ids
}

func TestListThemesFilters(t *testing.T) {
	ctx := context.Background()
	database := dbtest.NewTestDB(t)
	horror := model.Genre{GenreID: "horror", Name: "Horror"}
	comic := model.Genre{GenreID: "comic", Name: "Comic"}

	gangnam := dbtest.AddCafe(t, database, model.Cafe{CafeID: "gangnam", Name: "gangnam", AreaA: "seoul", AreaB: "gangnam"})
	busan := dbtest.AddCafe(t, database, model.Cafe{CafeID: "busan", Name: "busan", AreaA: "busan", AreaB: "seomyeon"})

	dbtest.AddTheme(t, database, model.Theme{
		ThemeID: "scary", CafeID: gangnam.CafeID, Name: "scary", DisplayName: "Ghost House",
		Level: 4, Fear: 5, Activity: 1, LockingRatio: 80, MinPerson: 2, MaxPerson: 4,
		Genres: []model.Genre{horror}, CreatedAt: dbtest.CreatedAt(0),
	})
	dbtest.AddTheme(t, database, model.Theme{
		ThemeID: "funny", CafeID: gangnam.CafeID, Name: "funny", DisplayName: "Clown Party",
		Level: 2, Fear: 1, Activity: 3, LockingRatio: 50, MinPerson: 2, MaxPerson: 6,
		Genres: []model.Genre{comic}, CreatedAt: dbtest.CreatedAt(1),
	})
	dbtest.AddTheme(t, database, model.Theme{
		ThemeID: "far", CafeID: busan.CafeID, Name: "far", DisplayName: "Ghost Ship",
		Level: 4, Fear: 3, Activity: 4, LockingRatio: 10, MinPerson: 1, MaxPerson: 2,
		Genres: []model.Genre{horror}, CreatedAt: dbtest.CreatedAt(2),
	})
	dbtest.AddTheme(t, database, model.Theme{
		ThemeID: "draft", CafeID: gangnam.CafeID, Name: "draft", DisplayName: "Ghost Draft",
		Status: model.StatusDraft, CreatedAt: dbtest.CreatedAt(3),
	})

	themeDAO := db.NewThemeDAO(database)
	cases := []struct {
		name     string
		filter   db.ThemeFilter
		expected []string
	}{
		{"all published", db.ThemeFilter{}, []string{"scary", "funny", "far"}},
		{"term", db.ThemeFilter{Term: "Ghost"}, []string{"scary", "far"}},
		{"cafe", db.ThemeFilter{CafeID: "busan"}, []string{"far"}},
		{"area a", db.ThemeFilter{AreaA: "seoul"}, []string{"scary", "funny"}},
		{"area b", db.ThemeFilter{AreaB: "seomyeon"}, []string{"far"}},
		{"genre", db.ThemeFilter{GenreID: "horror"}, []string{"scary", "far"}},
		{"level", db.ThemeFilter{Level: 2}, []string{"funny"}},
		{"person", db.ThemeFilter{Person: 5}, []string{"funny"}},
		{"fear low", db.ThemeFilter{Fear: db.RangeLow}, []string{"funny"}},
		{"fear medium", db.ThemeFilter{Fear: db.RangeMedium}, []string{"far"}},
		{"fear high", db.ThemeFilter{Fear: db.RangeHigh}, []string{"scary"}},
		{"activity high", db.ThemeFilter{Activity: db.RangeHigh}, []string{"far"}},
		{"locking ratio low", db.ThemeFilter{LockingRatio: db.RangeLow}, []string{"far"}},
		{"locking ratio medium", db.ThemeFilter{LockingRatio: db.RangeMedium}, []string{"funny"}},
		{"locking ratio high", db.ThemeFilter{LockingRatio: db.RangeHigh}, []string{"scary"}},
		{"combined", db.ThemeFilter{AreaA: "seoul", GenreID: "horror"}, []string{"scary"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			themes, err := themeDAO.ListThemes(ctx, tc.filter, db.Page{Take: 10})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, themeIDs(themes))
		})
	}
}

func TestListThemesCanceledContext(t *testing.T) {
	database := dbtest.NewTestDB(t)
	themeDAO := db.NewThemeDAO(database)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	filter := db.ThemeFilter{AreaA: "seoul", AreaB: "gangnam", GenreID: "horror"}
	_, err := themeDAO.ListThemes(ctx, filter, db.Page{Take: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetThemeByIdPreloads(t *testing.T) {
	ctx := context.Background()
	database := dbtest.NewTestDB(t)
	cafe := dbtest.AddCafe(t, database, model.Cafe{Name: "Room Escape"})
	theme := dbtest.AddTheme(t, database, model.Theme{
		CafeID: cafe.CafeID,
		Name:   "Prison",
		Genres: []model.Genre{{GenreID: "thriller", Name: "Thriller"}},
	})
	alice := dbtest.AddUser(t, database, "alice")
	themeDAO := db.NewThemeDAO(database)

	saved, err := themeDAO.SaveTheme(ctx, theme.ThemeID, alice.UserID)
	require.NoError(t, err)
	assert.True(t, saved)

	stored, err := themeDAO.GetThemeById(ctx, theme.ThemeID, alice.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored.Cafe)
	assert.Equal(t, "Room Escape", stored.Cafe.Name)
	require.Len(t, stored.Genres, 1)
	assert.Equal(t, "Thriller", stored.Genres[0].Name)
	assert.True(t, stored.Saved)

	_, err = themeDAO.GetThemeById(ctx, "missing", "")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestListBlogReviews(t *testing.T) {
	ctx := context.Background()
	database := dbtest.NewTestDB(t)
	cafe := dbtest.AddCafe(t, database, model.Cafe{Name: "Room Escape"})
	theme := dbtest.AddTheme(t, database, model.Theme{CafeID: cafe.CafeID, Name: "Prison"})

	for i, id := range []string{"old", "new"} {
		blogReview := model.BlogReview{BlogReviewID: id, ThemeID: theme.ThemeID, Title: id, Link: "https://blog.test/" + id, CreatedAt: dbtest.CreatedAt(i)}
		require.NoError(t, database.Create(&blogReview).Error)
	}

	blogReviews, err := db.NewThemeDAO(database).ListBlogReviews(ctx, theme.ThemeID, db.Page{Take: 1})
	require.NoError(t, err)
	require.Len(t, blogReviews, 2)
	assert.Equal(t, "new", blogReviews[0].BlogReviewID)
}
