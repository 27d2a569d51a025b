package model

import "time"

type Faq struct {
	FaqID     string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Question  string    `gorm:"column:question;type:text;not null" json:"question"`
	Answer    string    `gorm:"column:answer;type:text;not null" json:"answer"`
	Position  int       `gorm:"column:position;not null;default:0" json:"position"`
	Status    string    `gorm:"column:status;type:text;not null;default:DRAFT" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Faq) TableName() string {
	return "faq"
}
