package db

import (
	"context"
	"fmt"

	"escapenote-server/internals"
	"escapenote-server/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThemeReviewUpdate holds the editable fields of a theme review
type ThemeReviewUpdate struct {
	Rating   int
	Success  bool
	Level    int
	Fear     int
	Activity int
	Text     string
}

type ThemeReviewDAO struct {
	db *gorm.DB
}

func NewThemeReviewDAO(db *gorm.DB) *ThemeReviewDAO {
	return &ThemeReviewDAO{db: db}
}

// ListThemeReviews returns up to page.Take+1 reviews of the theme, newest first
func (themeReviewDAO *ThemeReviewDAO) ListThemeReviews(ctx context.Context, themeID string, page Page) ([]model.ThemeReview, error) {
	query := themeReviewDAO.db.WithContext(ctx).
		Model(&model.ThemeReview{}).
		Preload("User").
		Where("theme_reviews.theme_id = ?", themeID)

	page.Sort, page.Desc = "createdAt", true
	query, err := applyCursor(ctx, query, "theme_reviews", page, reviewSortColumns)
	if err != nil {
		return nil, err
	}

	reviews := []model.ThemeReview{}
	result := query.Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return reviews, nil
}

// GetOwnedThemeReview returns the review only if it was written by userID
func (themeReviewDAO *ThemeReviewDAO) GetOwnedThemeReview(ctx context.Context, reviewID string, userID string) (model.ThemeReview, error) {
	return getOwnedThemeReview(themeReviewDAO.db.WithContext(ctx), reviewID, userID)
}

func getOwnedThemeReview(tx *gorm.DB, reviewID string, userID string) (model.ThemeReview, error) {
	var review model.ThemeReview
	result := tx.Where("id = ?", reviewID).First(&review)
	if result.Error != nil {
		return model.ThemeReview{}, translateError(result.Error)
	}
	if review.UserID != userID {
		return model.ThemeReview{}, ErrForbidden
	}
	return review, nil
}

// CreateThemeReview saves the review and refreshes the theme aggregates in the
// same transaction. A user can review a theme only once.
func (themeReviewDAO *ThemeReviewDAO) CreateThemeReview(ctx context.Context, review *model.ThemeReview) error {
	transaction := themeReviewDAO.db.WithContext(ctx).Begin()
	if transaction.Error != nil {
		return transaction.Error
	}
	defer func() {
		if r := recover(); r != nil {
			transaction.Rollback()
			panic(r)
		}
	}()

	// the theme must exist
	var count int64
	result := transaction.Model(&model.Theme{}).Where("id = ?", review.ThemeID).Count(&count)
	if result.Error != nil {
		transaction.Rollback()
		return result.Error
	}
	if count == 0 {
		transaction.Rollback()
		return ErrNotFound
	}

	// one review per user and theme
	result = transaction.Model(&model.ThemeReview{}).Where("theme_id = ? AND user_id = ?", review.ThemeID, review.UserID).Count(&count)
	if result.Error != nil {
		transaction.Rollback()
		return result.Error
	}
	if count > 0 {
		transaction.Rollback()
		return ErrConflict
	}

	review.ThemeReviewID = uuid.NewString()
	result = transaction.Create(review)
	if result.Error != nil {
		transaction.Rollback()
		return translateError(result.Error)
	}

	err := recomputeThemeAggregate(transaction, review.ThemeID)
	if err != nil {
		transaction.Rollback()
		return err
	}

	return transaction.Commit().Error
}

func (themeReviewDAO *ThemeReviewDAO) UpdateThemeReview(ctx context.Context, reviewID string, userID string, update ThemeReviewUpdate) (model.ThemeReview, error) {
	transaction := themeReviewDAO.db.WithContext(ctx).Begin()
	if transaction.Error != nil {
		return model.ThemeReview{}, transaction.Error
	}
	defer func() {
		if r := recover(); r != nil {
			transaction.Rollback()
			panic(r)
		}
	}()

	review, err := getOwnedThemeReview(transaction, reviewID, userID)
	if err != nil {
		transaction.Rollback()
		return model.ThemeReview{}, err
	}

	// map so that zero scores are written too
	result := transaction.Model(&review).Updates(map[string]interface{}{
		"rating":   update.Rating,
		"success":  update.Success,
		"level":    update.Level,
		"fear":     update.Fear,
		"activity": update.Activity,
		"text":     update.Text,
	})
	if result.Error != nil {
		transaction.Rollback()
		return model.ThemeReview{}, result.Error
	}

	err = recomputeThemeAggregate(transaction, review.ThemeID)
	if err != nil {
		transaction.Rollback()
		return model.ThemeReview{}, err
	}

	result = transaction.Commit()
	if result.Error != nil {
		return model.ThemeReview{}, result.Error
	}

	review.Rating = update.Rating
	review.Success = update.Success
	review.Level = update.Level
	review.Fear = update.Fear
	review.Activity = update.Activity
	review.Text = update.Text
	return review, nil
}

// DeleteThemeReview removes a review owned by userID and returns it
func (themeReviewDAO *ThemeReviewDAO) DeleteThemeReview(ctx context.Context, reviewID string, userID string) (model.ThemeReview, error) {
	transaction := themeReviewDAO.db.WithContext(ctx).Begin()
	if transaction.Error != nil {
		return model.ThemeReview{}, transaction.Error
	}
	defer func() {
		if r := recover(); r != nil {
			transaction.Rollback()
			panic(r)
		}
	}()

	review, err := getOwnedThemeReview(transaction, reviewID, userID)
	if err != nil {
		transaction.Rollback()
		return model.ThemeReview{}, err
	}

	result := transaction.Where("id = ?", review.ThemeReviewID).Delete(&model.ThemeReview{})
	if result.Error != nil {
		transaction.Rollback()
		return model.ThemeReview{}, result.Error
	}
	if result.RowsAffected == 0 {
		transaction.Rollback()
		return model.ThemeReview{}, ErrNotFound
	}

	err = recomputeThemeAggregate(transaction, review.ThemeID)
	if err != nil {
		transaction.Rollback()
		return model.ThemeReview{}, err
	}

	return review, transaction.Commit().Error
}

// RecomputeThemeAggregate rebuilds the review statistics of the theme from its current reviews.
func (themeReviewDAO *ThemeReviewDAO) RecomputeThemeAggregate(ctx context.Context, themeID string) error {
	return recomputeThemeAggregate(themeReviewDAO.db.WithContext(ctx), themeID)
}

func recomputeThemeAggregate(tx *gorm.DB, themeID string) error {
	var reviews []model.ThemeReview
	result := tx.Select("rating", "level", "fear", "activity").Where("theme_id = ?", themeID).Find(&reviews)
	if result.Error != nil {
		return fmt.Errorf("%w: %w", ErrAggregateUpdate, result.Error)
	}

	aggregate := internals.ComputeThemeReviewsAggregate(reviews)

	result = tx.Model(&model.Theme{}).Where("id = ?", themeID).Updates(map[string]interface{}{
		"reviews_count":    aggregate.ReviewsCount,
		"reviews_rating":   aggregate.ReviewsRating,
		"reviews_level":    aggregate.ReviewsLevel,
		"reviews_fear":     aggregate.ReviewsFear,
		"reviews_activity": aggregate.ReviewsActivity,
	})
	if result.Error != nil {
		return fmt.Errorf("%w: %w", ErrAggregateUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: theme %s: %w", ErrAggregateUpdate, themeID, ErrNotFound)
	}

	return nil
}
