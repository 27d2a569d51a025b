package handlers

import (
	"net/http"
	"testing"

	"escapenote-server/db/dbtest"
	"escapenote-server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCafeReviewAggregateThroughAPI(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	alice := dbtest.AddUser(t, s.db, "alice")
	bob := dbtest.AddUser(t, s.db, "bob")

	rec := s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 5, "text": "great"}, s.accessToken(alice))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	aliceReview := decode[model.CafeReview](t, rec)

	rec = s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 2, "text": "meh"}, s.accessToken(bob))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/cafes/"+cafe.CafeID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[model.Cafe](t, rec)
	assert.Equal(t, 2, stored.ReviewsCount)
	assert.InDelta(t, 3.5, stored.ReviewsRating, 1e-9)

	rec = s.do(http.MethodPatch, "/cafe-reviews/"+aliceReview.CafeReviewID+"?cafeId="+cafe.CafeID, map[string]any{"rating": 4, "text": "good"}, s.accessToken(alice))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 4, decode[model.CafeReview](t, rec).Rating)

	rec = s.do(http.MethodGet, "/cafes/"+cafe.CafeID, nil, "")
	assert.InDelta(t, 3.0, decode[model.Cafe](t, rec).ReviewsRating, 1e-9)

	rec = s.do(http.MethodDelete, "/cafe-reviews/"+aliceReview.CafeReviewID, nil, s.accessToken(alice))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/cafes/"+cafe.CafeID, nil, "")
	stored = decode[model.Cafe](t, rec)
	assert.Equal(t, 1, stored.ReviewsCount)
	assert.InDelta(t, 2.0, stored.ReviewsRating, 1e-9)
}

func TestCafeReviewErrors(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	other := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Zero World"})
	alice := dbtest.AddUser(t, s.db, "alice")
	mallory := dbtest.AddUser(t, s.db, "mallory")

	rec := s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 5, "text": "great"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 6}, s.accessToken(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/cafes/missing/reviews", map[string]any{"rating": 3}, s.accessToken(alice))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 5, "text": "great"}, s.accessToken(alice))
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[model.CafeReview](t, rec)

	rec = s.do(http.MethodGet, "/cafe-reviews/"+review.CafeReviewID, nil, s.accessToken(mallory))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, "/cafe-reviews/"+review.CafeReviewID, map[string]any{"rating": 1}, s.accessToken(mallory))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, decode[errorResponse](t, rec).Detail, "forbidden")

	rec = s.do(http.MethodDelete, "/cafe-reviews/"+review.CafeReviewID, nil, s.accessToken(mallory))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/cafe-reviews/missing", nil, s.accessToken(alice))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/cafe-reviews/"+review.CafeReviewID+"?cafeId="+other.CafeID, nil, s.accessToken(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/cafe-reviews/"+review.CafeReviewID, nil, s.accessToken(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "great", decode[model.CafeReview](t, rec).Text)
}

func TestReviewTextIsSanitized(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	alice := dbtest.AddUser(t, s.db, "alice")

	rec := s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 5, "text": "<script>alert(1)</script>nice <b>room</b>"}, s.accessToken(alice))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "nice room", decode[model.CafeReview](t, rec).Text)
}

func TestThemeReviewThroughAPI(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	theme := dbtest.AddTheme(t, s.db, model.Theme{CafeID: cafe.CafeID, Name: "Prison"})
	alice := dbtest.AddUser(t, s.db, "alice")
	bob := dbtest.AddUser(t, s.db, "bob")

	rec := s.do(http.MethodPost, "/themes/"+theme.ThemeID+"/reviews", map[string]any{"rating": 4, "level": 3, "success": true}, s.accessToken(alice))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	review := decode[model.ThemeReview](t, rec)

	rec = s.do(http.MethodPost, "/themes/"+theme.ThemeID+"/reviews", map[string]any{"rating": 1}, s.accessToken(alice))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/themes/"+theme.ThemeID+"/reviews", map[string]any{"rating": 2, "level": 5, "fear": 4}, s.accessToken(bob))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/themes/"+theme.ThemeID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[model.Theme](t, rec)
	assert.Equal(t, 2, stored.ReviewsCount)
	assert.InDelta(t, 3.0, stored.ReviewsRating, 1e-9)
	assert.InDelta(t, 4.0, stored.ReviewsLevel, 1e-9)
	assert.InDelta(t, 4.0, stored.ReviewsFear, 1e-9)
	assert.Equal(t, 0.0, stored.ReviewsActivity)

	rec = s.do(http.MethodPatch, "/theme-reviews/"+review.ThemeReviewID, map[string]any{"rating": 4}, s.accessToken(bob))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, "/theme-reviews/"+review.ThemeReviewID+"?themeId=other", map[string]any{"rating": 4}, s.accessToken(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/theme-reviews/"+review.ThemeReviewID+"?themeId="+theme.ThemeID, nil, s.accessToken(alice))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/themes/"+theme.ThemeID+"/reviews", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[pageResponse[model.ThemeReview]](t, rec)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].User)
	assert.Equal(t, "bob", page.Items[0].User.Nickname)
	assert.Nil(t, page.PageInfo.EndCursor)
}

func TestAggregateOnMissingCafeIsNotFound(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	alice := dbtest.AddUser(t, s.db, "alice")

	rec := s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 5}, s.accessToken(alice))
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[model.CafeReview](t, rec)

	// the review outlives its cafe, there is no aggregate to write
	require.NoError(t, s.db.Exec("DELETE FROM cafes WHERE id = ?", cafe.CafeID).Error)

	rec = s.do(http.MethodDelete, "/cafe-reviews/"+review.CafeReviewID, nil, s.accessToken(alice))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// rolled back
	var count int64
	require.NoError(t, s.db.Model(&model.CafeReview{}).Where("id = ?", review.CafeReviewID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAggregateFailureIsServerError(t *testing.T) {
	s := newTestServer(t)
	cafe := dbtest.AddCafe(t, s.db, model.Cafe{Name: "Key Escape"})
	alice := dbtest.AddUser(t, s.db, "alice")

	rec := s.do(http.MethodPost, "/cafes/"+cafe.CafeID+"/reviews", map[string]any{"rating": 5}, s.accessToken(alice))
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[model.CafeReview](t, rec)

	// the aggregate update itself fails
	require.NoError(t, s.db.Migrator().DropTable(&model.Cafe{}))

	rec = s.do(http.MethodDelete, "/cafe-reviews/"+review.CafeReviewID, nil, s.accessToken(alice))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error updating reviews statistics")

	// rolled back
	var count int64
	require.NoError(t, s.db.Model(&model.CafeReview{}).Where("id = ?", review.CafeReviewID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
