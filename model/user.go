package model

import "time"

type User struct {
	UserID            string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Email             *string   `gorm:"column:email;type:text;uniqueIndex" json:"email"` // nil for phone-only accounts
	EmailVerified     bool      `gorm:"column:email_verified;not null;default:false" json:"emailVerified"`
	Password          string    `gorm:"column:password;type:text" json:"-"`
	Avatar            string    `gorm:"column:avatar;type:text" json:"avatar"`
	Nickname          string    `gorm:"column:nickname;type:text;not null;uniqueIndex" json:"nickname"`
	Type              string    `gorm:"column:type;type:text" json:"type"`
	Username          string    `gorm:"column:username;type:text" json:"username"`
	Headline          string    `gorm:"column:headline;type:text" json:"headline"`
	Bio               string    `gorm:"column:bio;type:text" json:"bio"`
	Website           string    `gorm:"column:website;type:text" json:"website"`
	Instagram         string    `gorm:"column:instagram;type:text" json:"instagram"`
	AgreeOlder14Years bool      `gorm:"column:agree_older14_years;not null;default:false" json:"agreeOlder14Years"`
	AgreeTerms        bool      `gorm:"column:agree_terms;not null;default:false" json:"agreeTerms"`
	AgreePrivacy      bool      `gorm:"column:agree_privacy;not null;default:false" json:"agreePrivacy"`
	AgreeMarketing    bool      `gorm:"column:agree_marketing;not null;default:false" json:"agreeMarketing"`
	RefreshToken      string    `gorm:"column:refresh_token;type:text" json:"-"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"column:updated_at" json:"updatedAt"`
	HasPassword       bool      `gorm:"-" json:"hasPassword"`
}

func (User) TableName() string {
	return "users"
}

// Account links a user to a social sign-in provider (google.com, apple.com, ...)
type Account struct {
	AccountID string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Provider  string    `gorm:"column:provider;type:text;not null;index:idx_account_provider_user,unique" json:"provider"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_account_provider_user,unique" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Account) TableName() string {
	return "accounts"
}
