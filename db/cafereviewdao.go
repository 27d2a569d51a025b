package db

import (
	"context"
	"fmt"

	"escapenote-server/internals"
	"escapenote-server/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CafeReviewDAO struct {
	db *gorm.DB
}

func NewCafeReviewDAO(db *gorm.DB) *CafeReviewDAO {
	return &CafeReviewDAO{db: db}
}

// ListCafeReviews returns up to page.Take+1 reviews of the cafe, newest first
func (cafeReviewDAO *CafeReviewDAO) ListCafeReviews(ctx context.Context, cafeID string, page Page) ([]model.CafeReview, error) {
	query := cafeReviewDAO.db.WithContext(ctx).
		Model(&model.CafeReview{}).
		Preload("User").
		Where("cafe_reviews.cafe_id = ?", cafeID)

	page.Sort, page.Desc = "createdAt", true
	query, err := applyCursor(ctx, query, "cafe_reviews", page, reviewSortColumns)
	if err != nil {
		return nil, err
	}

	reviews := []model.CafeReview{}
	result := query.Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return reviews, nil
}

// GetOwnedCafeReview returns the review only if it was written by userID
func (cafeReviewDAO *CafeReviewDAO) GetOwnedCafeReview(ctx context.Context, reviewID string, userID string) (model.CafeReview, error) {
	return getOwnedCafeReview(cafeReviewDAO.db.WithContext(ctx), reviewID, userID)
}

func getOwnedCafeReview(tx *gorm.DB, reviewID string, userID string) (model.CafeReview, error) {
	var review model.CafeReview
	result := tx.Where("id = ?", reviewID).First(&review)
	if result.Error != nil {
		return model.CafeReview{}, translateError(result.Error)
	}
	if review.UserID != userID {
		return model.CafeReview{}, ErrForbidden
	}
	return review, nil
}

// CreateCafeReview saves the review and refreshes the cafe aggregates in the same transaction
func (cafeReviewDAO *CafeReviewDAO) CreateCafeReview(ctx context.Context, review *model.CafeReview) error {
	transaction := cafeReviewDAO.db.WithContext(ctx).Begin()
	if transaction.Error != nil {
		return transaction.Error
	}
	defer func() {
		if r := recover(); r != nil {
			transaction.Rollback()
			panic(r)
		}
	}()

	// the cafe must exist
	var count int64
	result := transaction.Model(&model.Cafe{}).Where("id = ?", review.CafeID).Count(&count)
	if result.Error != nil {
		transaction.Rollback()
		return result.Error
	}
	if count == 0 {
		transaction.Rollback()
		return ErrNotFound
	}

	review.CafeReviewID = uuid.NewString()
	result = transaction.Create(review)
	if result.Error != nil {
		transaction.Rollback()
		return translateError(result.Error)
	}

	err := recomputeCafeAggregate(transaction, review.CafeID)
	if err != nil {
		transaction.Rollback()
		return err
	}

	return transaction.Commit().Error
}

// UpdateCafeReview changes rating and text of a review owned by userID
func (cafeReviewDAO *CafeReviewDAO) UpdateCafeReview(ctx context.Context, reviewID string, userID string, rating int, text string) (model.CafeReview, error) {
	transaction := cafeReviewDAO.db.WithContext(ctx).Begin()
	if transaction.Error != nil {
		return model.CafeReview{}, transaction.Error
	}
	defer func() {
		if r := recover(); r != nil {
			transaction.Rollback()
			panic(r)
		}
	}()

	review, err := getOwnedCafeReview(transaction, reviewID, userID)
	if err != nil {
		transaction.Rollback()
		return model.CafeReview{}, err
	}

	result := transaction.Model(&review).Updates(map[string]interface{}{
		"rating": rating,
		"text":   text,
	})
	if result.Error != nil {
		transaction.Rollback()
		return model.CafeReview{}, result.Error
	}

	err = recomputeCafeAggregate(transaction, review.CafeID)
	if err != nil {
		transaction.Rollback()
		return model.CafeReview{}, err
	}

	result = transaction.Commit()
	if result.Error != nil {
		return model.CafeReview{}, result.Error
	}

	review.Rating = rating
	review.Text = text
	return review, nil
}

// DeleteCafeReview removes a review owned by userID and returns it
func (cafeReviewDAO *CafeReviewDAO) DeleteCafeReview(ctx context.Context, reviewID string, userID string) (model.CafeReview, error) {
	transaction := cafeReviewDAO.db.WithContext(ctx).Begin()
	if transaction.Error != nil {
		return model.CafeReview{}, transaction.Error
	}
	defer func() {
		if r := recover(); r != nil {
			transaction.Rollback()
			panic(r)
		}
	}()

	review, err := getOwnedCafeReview(transaction, reviewID, userID)
	if err != nil {
		transaction.Rollback()
		return model.CafeReview{}, err
	}

	result := transaction.Where("id = ?", review.CafeReviewID).Delete(&model.CafeReview{})
	if result.Error != nil {
		transaction.Rollback()
		return model.CafeReview{}, result.Error
	}
	if result.RowsAffected == 0 {
		transaction.Rollback()
		return model.CafeReview{}, ErrNotFound
	}

	err = recomputeCafeAggregate(transaction, review.CafeID)
	if err != nil {
		transaction.Rollback()
		return model.CafeReview{}, err
	}

	return review, transaction.Commit().Error
}

// RecomputeCafeAggregate rebuilds reviews_count and reviews_rating of the cafe
// from its current reviews.
func (cafeReviewDAO *CafeReviewDAO) RecomputeCafeAggregate(ctx context.Context, cafeID string) error {
	return recomputeCafeAggregate(cafeReviewDAO.db.WithContext(ctx), cafeID)
}

func recomputeCafeAggregate(tx *gorm.DB, cafeID string) error {
	var reviews []model.CafeReview
	result := tx.Select("rating").Where("cafe_id = ?", cafeID).Find(&reviews)
	if result.Error != nil {
		return fmt.Errorf("%w: %w", ErrAggregateUpdate, result.Error)
	}

	aggregate := internals.ComputeCafeReviewsAggregate(reviews)

	result = tx.Model(&model.Cafe{}).Where("id = ?", cafeID).Updates(map[string]interface{}{
		"reviews_count":  aggregate.ReviewsCount,
		"reviews_rating": aggregate.ReviewsRating,
	})
	if result.Error != nil {
		return fmt.Errorf("%w: %w", ErrAggregateUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cafe %s: %w", ErrAggregateUpdate, cafeID, ErrNotFound)
	}

	return nil
}
