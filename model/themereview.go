package model

import "time"

// ThemeReview is a user's review of a theme. Level, Fear and Activity are
// optional scores: 0 means the user left them empty.
type ThemeReview struct {
	ThemeReviewID string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	ThemeID       string    `gorm:"column:theme_id;type:varchar(36);not null;index:idx_theme_review_user,unique" json:"themeId"`
	UserID        string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_theme_review_user,unique" json:"userId"`
	Rating        int       `gorm:"column:rating;not null" json:"rating"`
	Success       bool      `gorm:"column:success;not null;default:false" json:"success"`
	Level         int       `gorm:"column:level;not null;default:0" json:"level"`
	Fear          int       `gorm:"column:fear;not null;default:0" json:"fear"`
	Activity      int       `gorm:"column:activity;not null;default:0" json:"activity"`
	Text          string    `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
	User          *User     `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (ThemeReview) TableName() string {
	return "theme_reviews"
}

func (r ThemeReview) GetID() string {
	return r.ThemeReviewID
}

// ThemeReviewsAggregate holds the denormalized review statistics stored on a theme
type ThemeReviewsAggregate struct {
	ReviewsCount    int     `json:"reviewsCount"`
	ReviewsRating   float64 `json:"reviewsRating"`
	ReviewsLevel    float64 `json:"reviewsLevel"`
	ReviewsFear     float64 `json:"reviewsFear"`
	ReviewsActivity float64 `json:"reviewsActivity"`
}

// BlogReview is an external blog post about a theme, collected by a crawler
type BlogReview struct {
	BlogReviewID string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	ThemeID      string    `gorm:"column:theme_id;type:varchar(36);not null;index" json:"themeId"`
	Title        string    `gorm:"column:title;type:text;not null" json:"title"`
	Link         string    `gorm:"column:link;type:text;not null" json:"link"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt    time.Time `gorm:"column:created_at;index" json:"createdAt"`
}

func (BlogReview) TableName() string {
	return "blog_reviews"
}

func (r BlogReview) GetID() string {
	return r.BlogReviewID
}
