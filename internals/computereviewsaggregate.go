package internals

import "escapenote-server/model"

func ComputeCafeReviewsAggregate(reviews []model.CafeReview) model.CafeReviewsAggregate {
	ratingSum := 0
	for _, review := range reviews {
		ratingSum += review.Rating
	}

	return model.CafeReviewsAggregate{
		ReviewsCount:  len(reviews),
		ReviewsRating: average(ratingSum, len(reviews)),
	}
}

// ComputeThemeReviewsAggregate computes the averages stored on a theme.
// Level, fear and activity are averaged only over the reviews where they are
// non-zero: a zero score is treated as "not given", so a genuine 0 can never
// lower an average.
func ComputeThemeReviewsAggregate(reviews []model.ThemeReview) model.ThemeReviewsAggregate {
	ratingSum := 0
	levelSum, levelCount := 0, 0
	fearSum, fearCount := 0, 0
	activitySum, activityCount := 0, 0

	for _, review := range reviews {
		ratingSum += review.Rating
		if review.Level != 0 {
			levelSum += review.Level
			levelCount++
		}
		if review.Fear != 0 {
			fearSum += review.Fear
			fearCount++
		}
		if review.Activity != 0 {
			activitySum += review.Activity
			activityCount++
		}
	}

	return model.ThemeReviewsAggregate{
		ReviewsCount:    len(reviews),
		ReviewsRating:   average(ratingSum, len(reviews)),
		ReviewsLevel:    average(levelSum, levelCount),
		ReviewsFear:     average(fearSum, fearCount),
		ReviewsActivity: average(activitySum, activityCount),
	}
}

func average(sum int, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
