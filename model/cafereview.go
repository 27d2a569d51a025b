package model

import "time"

type CafeReview struct {
	CafeReviewID string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	CafeID       string    `gorm:"column:cafe_id;type:varchar(36);not null;index" json:"cafeId"`
	UserID       string    `gorm:"column:user_id;type:varchar(36);not null;index" json:"userId"`
	Rating       int       `gorm:"column:rating;not null" json:"rating"`
	Text         string    `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt    time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
	User         *User     `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (CafeReview) TableName() string {
	return "cafe_reviews"
}

func (r CafeReview) GetID() string {
	return r.CafeReviewID
}

// CafeReviewsAggregate holds the denormalized review statistics stored on a cafe
type CafeReviewsAggregate struct {
	ReviewsCount  int     `json:"reviewsCount"`
	ReviewsRating float64 `json:"reviewsRating"`
}
