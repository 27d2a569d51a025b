package model

import "time"

type Theme struct {
	ThemeID         string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	CafeID          string    `gorm:"column:cafe_id;type:varchar(36);not null;index" json:"cafeId"`
	Name            string    `gorm:"column:name;type:text;not null" json:"name"`
	DisplayName     string    `gorm:"column:display_name;type:text" json:"displayName"`
	Intro           string    `gorm:"column:intro;type:text" json:"intro"`
	Thumbnail       string    `gorm:"column:thumbnail;type:text" json:"thumbnail"`
	Level           int       `gorm:"column:level;not null;default:0" json:"level"`
	Fear            int       `gorm:"column:fear;not null;default:0" json:"fear"`
	Activity        int       `gorm:"column:activity;not null;default:0" json:"activity"`
	LockingRatio    int       `gorm:"column:locking_ratio;not null;default:0" json:"lockingRatio"`
	MinPerson       int       `gorm:"column:min_person;not null;default:1" json:"minPerson"`
	MaxPerson       int       `gorm:"column:max_person;not null;default:1" json:"maxPerson"`
	Price           int       `gorm:"column:price;not null;default:0" json:"price"`
	During          int       `gorm:"column:during;not null;default:0" json:"during"` // minutes
	Status          string    `gorm:"column:status;type:text;not null;default:DRAFT" json:"status"`
	View            int       `gorm:"column:view;not null;default:0" json:"view"`
	ReviewsCount    int       `gorm:"column:reviews_count;not null;default:0" json:"reviewsCount"`
	ReviewsRating   float64   `gorm:"column:reviews_rating;not null;default:0" json:"reviewsRating"`
	ReviewsLevel    float64   `gorm:"column:reviews_level;not null;default:0" json:"reviewsLevel"`
	ReviewsFear     float64   `gorm:"column:reviews_fear;not null;default:0" json:"reviewsFear"`
	ReviewsActivity float64   `gorm:"column:reviews_activity;not null;default:0" json:"reviewsActivity"`
	CreatedAt       time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Cafe            *Cafe     `gorm:"foreignKey:CafeID;references:CafeID" json:"cafe,omitempty"`
	Genres          []Genre   `gorm:"many2many:genre_themes;joinForeignKey:ThemeID;joinReferences:GenreID" json:"genre"`
	Saved           bool      `gorm:"-" json:"saved"`
}

func (Theme) TableName() string {
	return "themes"
}

func (t Theme) GetID() string {
	return t.ThemeID
}

// ThemeSave is a bookmark of a theme by a user
type ThemeSave struct {
	ThemeSaveID string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	ThemeID     string    `gorm:"column:theme_id;type:varchar(36);not null;index:idx_theme_save_user,unique" json:"themeId"`
	UserID      string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_theme_save_user,unique" json:"userId"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (ThemeSave) TableName() string {
	return "theme_saves"
}

type Genre struct {
	GenreID string `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Name    string `gorm:"column:name;type:text;not null" json:"name"`
}

func (Genre) TableName() string {
	return "genre"
}
