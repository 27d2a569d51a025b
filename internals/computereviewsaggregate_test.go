package internals

import (
	"testing"

	"escapenote-server/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeCafeReviewsAggregate(t *testing.T) {
	aggregate := ComputeCafeReviewsAggregate(nil)
	assert.Equal(t, 0, aggregate.ReviewsCount)
	assert.Equal(t, 0.0, aggregate.ReviewsRating)

	aggregate = ComputeCafeReviewsAggregate([]model.CafeReview{{Rating: 5}, {Rating: 3}})
	assert.Equal(t, 2, aggregate.ReviewsCount)
	assert.InDelta(t, 4.0, aggregate.ReviewsRating, 1e-9)

	aggregate = ComputeCafeReviewsAggregate([]model.CafeReview{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.InDelta(t, 13.0/3.0, aggregate.ReviewsRating, 1e-9)
}

func TestComputeThemeReviewsAggregateSkipsZeroScores(t *testing.T) {
	aggregate := ComputeThemeReviewsAggregate([]model.ThemeReview{
		{Rating: 4, Level: 3, Fear: 0, Activity: 0},
		{Rating: 2, Level: 5, Fear: 4, Activity: 0},
	})

	assert.Equal(t, 2, aggregate.ReviewsCount)
	assert.InDelta(t, 3.0, aggregate.ReviewsRating, 1e-9)
	assert.InDelta(t, 4.0, aggregate.ReviewsLevel, 1e-9)
	assert.InDelta(t, 4.0, aggregate.ReviewsFear, 1e-9)
	assert.Equal(t, 0.0, aggregate.ReviewsActivity)
}

func TestComputeThemeReviewsAggregateEmpty(t *testing.T) {
	assert.Equal(t, model.ThemeReviewsAggregate{}, ComputeThemeReviewsAggregate([]model.ThemeReview{}))
}
