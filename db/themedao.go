package db

import (
	"context"
	"fmt"

	"escapenote-server/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoreRange string

const (
	RangeLow    ScoreRange = "low"
	RangeMedium ScoreRange = "medium"
	RangeHigh   ScoreRange = "high"
)

// ThemeFilter holds the optional filters of the theme listing, zero values are ignored
type ThemeFilter struct {
	Term         string
	CafeID       string
	AreaA        string
	AreaB        string
	GenreID      string
	Level        int
	Person       int
	Fear         ScoreRange
	Activity     ScoreRange
	LockingRatio ScoreRange
	UserID       string
}

type ThemeDAO struct {
	db *gorm.DB
}

func NewThemeDAO(db *gorm.DB) *ThemeDAO {
	return &ThemeDAO{db: db}
}

func (themeDAO *ThemeDAO) ListThemes(ctx context.Context, filter ThemeFilter, page Page) ([]model.Theme, error) {
	query := themeDAO.db.WithContext(ctx).
		Model(&model.Theme{}).
		Preload("Cafe").
		Preload("Genres").
		Where("themes.status = ?", model.StatusPublished)

	if filter.Term != "" {
		query = query.Where("themes.display_name LIKE ?", "%"+filter.Term+"%")
	}
	if filter.CafeID != "" {
		query = query.Where("themes.cafe_id = ?", filter.CafeID)
	}
	if filter.AreaA != "" {
		query = query.Where("themes.cafe_id IN (?)", themeDAO.db.WithContext(ctx).Model(&model.Cafe{}).Select("id").Where("area_a = ?", filter.AreaA))
	}
	if filter.AreaB != "" {
		query = query.Where("themes.cafe_id IN (?)", themeDAO.db.WithContext(ctx).Model(&model.Cafe{}).Select("id").Where("area_b = ?", filter.AreaB))
	}
	if filter.GenreID != "" {
		query = query.Where("themes.id IN (?)", themeDAO.db.WithContext(ctx).Table("genre_themes").Select("theme_id").Where("genre_id = ?", filter.GenreID))
	}
	if filter.Level > 0 {
		query = query.Where("themes.level = ?", filter.Level)
	}
	if filter.Person > 0 {
		query = query.Where("themes.min_person <= ? AND themes.max_person >= ?", filter.Person, filter.Person)
	}
	query = whereScoreRange(query, "themes.fear", filter.Fear, 2, 4)
	query = whereScoreRange(query, "themes.activity", filter.Activity, 2, 4)
	query = whereScoreRange(query, "themes.locking_ratio", filter.LockingRatio, 40, 70)

	query, err := applyCursor(ctx, query, "themes", page, listingSortColumns)
	if err != nil {
		return nil, err
	}

	themes := []model.Theme{}
	result := query.Find(&themes)
	if result.Error != nil {
		return nil, result.Error
	}

	err = themeDAO.injectSaved(ctx, themes, filter.UserID)
	if err != nil {
		return nil, err
	}

	return themes, nil
}

// whereScoreRange filters column into low [1, lowMax], medium (lowMax, highMin)
// or high [highMin, ...)
func whereScoreRange(query *gorm.DB, column string, scoreRange ScoreRange, lowMax int, highMin int) *gorm.DB {
	switch scoreRange {
	case RangeLow:
		return query.Where(fmt.Sprintf("%s >= ? AND %s <= ?", column, column), 1, lowMax)
	case RangeMedium:
		return query.Where(fmt.Sprintf("%s > ? AND %s < ?", column, column), lowMax, highMin)
	case RangeHigh:
		return query.Where(fmt.Sprintf("%s >= ?", column), highMin)
	default:
		return query
	}
}

func (themeDAO *ThemeDAO) GetThemeById(ctx context.Context, themeID string, userID string) (model.Theme, error) {
	var theme model.Theme

	result := themeDAO.db.WithContext(ctx).
		Preload("Cafe").
		Preload("Genres").
		Where("id = ?", themeID).
		First(&theme)
	if result.Error != nil {
		return model.Theme{}, translateError(result.Error)
	}

	themes := []model.Theme{theme}
	err := themeDAO.injectSaved(ctx, themes, userID)
	if err != nil {
		return model.Theme{}, err
	}

	return themes[0], nil
}

func (themeDAO *ThemeDAO) IncrementView(ctx context.Context, themeID string) error {
	result := themeDAO.db.WithContext(ctx).
		Model(&model.Theme{}).
		Where("id = ?", themeID).
		UpdateColumn("view", gorm.Expr("view + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveTheme bookmarks the theme, it returns false when it was already saved
func (themeDAO *ThemeDAO) SaveTheme(ctx context.Context, themeID string, userID string) (bool, error) {
	var count int64
	result := themeDAO.db.WithContext(ctx).Model(&model.Theme{}).Where("id = ?", themeID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	if count == 0 {
		return false, ErrNotFound
	}

	result = themeDAO.db.WithContext(ctx).Model(&model.ThemeSave{}).Where("theme_id = ? AND user_id = ?", themeID, userID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	if count > 0 {
		return false, nil
	}

	themeSave := model.ThemeSave{
		ThemeSaveID: uuid.NewString(),
		ThemeID:     themeID,
		UserID:      userID,
	}
	result = themeDAO.db.WithContext(ctx).Create(&themeSave)
	if result.Error != nil {
		return false, translateError(result.Error)
	}

	return true, nil
}

// UnsaveTheme removes the bookmark, it returns false when there was none
func (themeDAO *ThemeDAO) UnsaveTheme(ctx context.Context, themeID string, userID string) (bool, error) {
	result := themeDAO.db.WithContext(ctx).Where("theme_id = ? AND user_id = ?", themeID, userID).Delete(&model.ThemeSave{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RecommendThemes picks random popular themes, with their cafe and genres
func (themeDAO *ThemeDAO) RecommendThemes(ctx context.Context) ([]model.Theme, error) {
	themes := []model.Theme{}
	result := themeDAO.db.WithContext(ctx).
		Preload("Cafe").
		Preload("Genres").
		Where("view >= ? AND status = ?", recommendationMinViews, model.StatusPublished).
		Order("RANDOM()").
		Limit(recommendationsNumber).
		Find(&themes)
	if result.Error != nil {
		return nil, result.Error
	}
	return themes, nil
}

func (themeDAO *ThemeDAO) GetSitemap(ctx context.Context) ([]model.SitemapEntry, error) {
	entries := []model.SitemapEntry{}
	result := themeDAO.db.WithContext(ctx).
		Model(&model.Theme{}).
		Select("id, updated_at").
		Where("status = ?", model.StatusPublished).
		Order("created_at desc").
		Scan(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// ListBlogReviews returns up to page.Take+1 blog reviews of a theme, newest first
func (themeDAO *ThemeDAO) ListBlogReviews(ctx context.Context, themeID string, page Page) ([]model.BlogReview, error) {
	query := themeDAO.db.WithContext(ctx).Model(&model.BlogReview{}).Where("blog_reviews.theme_id = ?", themeID)

	page.Sort, page.Desc = "createdAt", true
	query, err := applyCursor(ctx, query, "blog_reviews", page, reviewSortColumns)
	if err != nil {
		return nil, err
	}

	blogReviews := []model.BlogReview{}
	result := query.Find(&blogReviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return blogReviews, nil
}

func (themeDAO *ThemeDAO) injectSaved(ctx context.Context, themes []model.Theme, userID string) error {
	if userID == "" || len(themes) == 0 {
		return nil
	}

	themeIDs := make([]string, 0, len(themes))
	for _, theme := range themes {
		themeIDs = append(themeIDs, theme.ThemeID)
	}

	var savedIDs []string
	result := themeDAO.db.WithContext(ctx).
		Model(&model.ThemeSave{}).
		Where("user_id = ? AND theme_id IN ?", userID, themeIDs).
		Pluck("theme_id", &savedIDs)
	if result.Error != nil {
		return fmt.Errorf("error getting saved themes: %w", result.Error)
	}

	saved := make(map[string]bool, len(savedIDs))
	for _, id := range savedIDs {
		saved[id] = true
	}
	for i := range themes {
		themes[i].Saved = saved[themes[i].ThemeID]
	}

	return nil
}
