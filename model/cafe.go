package model

import "time"

const (
	StatusPublished = "PUBLISHED"
	StatusDraft     = "DRAFT"
)

type Cafe struct {
	CafeID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Name          string    `gorm:"column:name;type:text;not null" json:"name"`
	Intro         string    `gorm:"column:intro;type:text" json:"intro"`
	AreaA         string    `gorm:"column:area_a;type:text;index" json:"areaA"`
	AreaB         string    `gorm:"column:area_b;type:text;index" json:"areaB"`
	Address       string    `gorm:"column:address;type:text" json:"address"`
	Tel           string    `gorm:"column:tel;type:text" json:"tel"`
	Website       string    `gorm:"column:website;type:text" json:"website"`
	Thumbnail     string    `gorm:"column:thumbnail;type:text" json:"thumbnail"`
	Status        string    `gorm:"column:status;type:text;not null;default:DRAFT" json:"status"`
	View          int       `gorm:"column:view;not null;default:0" json:"view"`
	ReviewsCount  int       `gorm:"column:reviews_count;not null;default:0" json:"reviewsCount"`
	ReviewsRating float64   `gorm:"column:reviews_rating;not null;default:0" json:"reviewsRating"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Themes        []Theme   `gorm:"foreignKey:CafeID;references:CafeID" json:"themes,omitempty"`
	Saved         bool      `gorm:"-" json:"saved"`
}

func (Cafe) TableName() string {
	return "cafes"
}

func (c Cafe) GetID() string {
	return c.CafeID
}

// CafeSave is a bookmark of a cafe by a user
type CafeSave struct {
	CafeSaveID string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	CafeID     string    `gorm:"column:cafe_id;type:varchar(36);not null;index:idx_cafe_save_user,unique" json:"cafeId"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_cafe_save_user,unique" json:"userId"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (CafeSave) TableName() string {
	return "cafe_saves"
}
