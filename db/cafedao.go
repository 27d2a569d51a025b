package db

import (
	"context"
	"fmt"

	"escapenote-server/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recommendationsNumber = 8
const recommendationMinViews = 100

type CafeDAO struct {
	db *gorm.DB
}

func NewCafeDAO(db *gorm.DB) *CafeDAO {
	return &CafeDAO{db: db}
}

// CafeFilter holds the optional filters of the cafe listing
type CafeFilter struct {
	Term  string
	AreaB string
	// used to flag the cafes saved by the current user, can be empty
	UserID string
}

// ListCafes returns up to page.Take+1 published cafes, the extra one being the
// pagination sentinel.
func (cafeDAO *CafeDAO) ListCafes(ctx context.Context, filter CafeFilter, page Page) ([]model.Cafe, error) {
	query := cafeDAO.db.WithContext(ctx).
		Model(&model.Cafe{}).
		Preload("Themes").
		Where("cafes.status = ?", model.StatusPublished)
	if filter.Term != "" {
		query = query.Where("cafes.name LIKE ?", "%"+filter.Term+"%")
	}
	if filter.AreaB != "" {
		query = query.Where("cafes.area_b = ?", filter.AreaB)
	}

	query, err := applyCursor(ctx, query, "cafes", page, listingSortColumns)
	if err != nil {
		return nil, err
	}

	cafes := []model.Cafe{}
	result := query.Find(&cafes)
	if result.Error != nil {
		return nil, result.Error
	}

	err = cafeDAO.injectSaved(ctx, cafes, filter.UserID)
	if err != nil {
		return nil, err
	}

	return cafes, nil
}

func (cafeDAO *CafeDAO) GetCafeById(ctx context.Context, cafeID string, userID string) (model.Cafe, error) {
	var cafe model.Cafe

	result := cafeDAO.db.WithContext(ctx).Preload("Themes").Where("id = ?", cafeID).First(&cafe)
	if result.Error != nil {
		return model.Cafe{}, translateError(result.Error)
	}

	cafes := []model.Cafe{cafe}
	err := cafeDAO.injectSaved(ctx, cafes, userID)
	if err != nil {
		return model.Cafe{}, err
	}

	return cafes[0], nil
}

func (cafeDAO *CafeDAO) IncrementView(ctx context.Context, cafeID string) error {
	result := cafeDAO.db.WithContext(ctx).
		Model(&model.Cafe{}).
		Where("id = ?", cafeID).
		UpdateColumn("view", gorm.Expr("view + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveCafe bookmarks the cafe, it returns false when it was already saved
func (cafeDAO *CafeDAO) SaveCafe(ctx context.Context, cafeID string, userID string) (bool, error) {
	var count int64
	result := cafeDAO.db.WithContext(ctx).Model(&model.Cafe{}).Where("id = ?", cafeID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	if count == 0 {
		return false, ErrNotFound
	}

	result = cafeDAO.db.WithContext(ctx).Model(&model.CafeSave{}).Where("cafe_id = ? AND user_id = ?", cafeID, userID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	if count > 0 {
		return false, nil
	}

	cafeSave := model.CafeSave{
		CafeSaveID: uuid.NewString(),
		CafeID:     cafeID,
		UserID:     userID,
	}
	result = cafeDAO.db.WithContext(ctx).Create(&cafeSave)
	if result.Error != nil {
		return false, translateError(result.Error)
	}

	return true, nil
}

// UnsaveCafe removes the bookmark, it returns false when there was none
func (cafeDAO *CafeDAO) UnsaveCafe(ctx context.Context, cafeID string, userID string) (bool, error) {
	result := cafeDAO.db.WithContext(ctx).Where("cafe_id = ? AND user_id = ?", cafeID, userID).Delete(&model.CafeSave{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RecommendCafes picks random popular cafes
func (cafeDAO *CafeDAO) RecommendCafes(ctx context.Context) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	result := cafeDAO.db.WithContext(ctx).
		Where("view >= ? AND status = ?", recommendationMinViews, model.StatusPublished).
		Order("RANDOM()").
		Limit(recommendationsNumber).
		Find(&cafes)
	if result.Error != nil {
		return nil, result.Error
	}
	return cafes, nil
}

func (cafeDAO *CafeDAO) GetSitemap(ctx context.Context) ([]model.SitemapEntry, error) {
	entries := []model.SitemapEntry{}
	result := cafeDAO.db.WithContext(ctx).
		Model(&model.Cafe{}).
		Select("id, updated_at").
		Where("status = ?", model.StatusPublished).
		Order("created_at desc").
		Scan(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func (cafeDAO *CafeDAO) injectSaved(ctx context.Context, cafes []model.Cafe, userID string) error {
	if userID == "" || len(cafes) == 0 {
		return nil
	}

	cafeIDs := make([]string, 0, len(cafes))
	for _, cafe := range cafes {
		cafeIDs = append(cafeIDs, cafe.CafeID)
	}

	var savedIDs []string
	result := cafeDAO.db.WithContext(ctx).
		Model(&model.CafeSave{}).
		Where("user_id = ? AND cafe_id IN ?", userID, cafeIDs).
		Pluck("cafe_id", &savedIDs)
	if result.Error != nil {
		return fmt.Errorf("error getting saved cafes: %w", result.Error)
	}

	saved := make(map[string]bool, len(savedIDs))
	for _, id := range savedIDs {
		saved[id] = true
	}
	for i := range cafes {
		cafes[i].Saved = saved[cafes[i].CafeID]
	}

	return nil
}
