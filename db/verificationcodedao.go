package db

import (
	"context"

	"escapenote-server/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationCodeDAO struct {
	db *gorm.DB
}

func NewVerificationCodeDAO(db *gorm.DB) *VerificationCodeDAO {
	return &VerificationCodeDAO{db: db}
}

// CreatePendingCode invalidates every pending code of the identifier and stores the new one
func (verificationCodeDAO *VerificationCodeDAO) CreatePendingCode(ctx context.Context, identifier string, code string) error {
	return verificationCodeDAO.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := setStatus(tx, identifier, model.VerificationPending, model.VerificationInvalid)
		if err != nil {
			return err
		}

		verificationCode := model.VerificationCode{
			VerificationCodeID: uuid.NewString(),
			Identifier:         identifier,
			Code:               code,
			Status:             model.VerificationPending,
		}
		return tx.Create(&verificationCode).Error
	})
}

// InvalidateVerified marks previously verified codes of the identifier as invalid
func (verificationCodeDAO *VerificationCodeDAO) InvalidateVerified(ctx context.Context, identifier string) error {
	return setStatus(verificationCodeDAO.db.WithContext(ctx), identifier, model.VerificationVerified, model.VerificationInvalid)
}

func setStatus(tx *gorm.DB, identifier string, from model.VerificationStatus, to model.VerificationStatus) error {
	return tx.Model(&model.VerificationCode{}).
		Where("identifier = ? AND status = ?", identifier, from).
		Update("status", to).Error
}

// FindLatest returns the newest code of the identifier with the given status
func (verificationCodeDAO *VerificationCodeDAO) FindLatest(ctx context.Context, identifier string, status model.VerificationStatus) (model.VerificationCode, error) {
	var verificationCode model.VerificationCode
	result := verificationCodeDAO.db.WithContext(ctx).
		Where("identifier = ? AND status = ?", identifier, status).
		Order("created_at desc").
		First(&verificationCode)
	if result.Error != nil {
		return model.VerificationCode{}, translateError(result.Error)
	}
	return verificationCode, nil
}

func (verificationCodeDAO *VerificationCodeDAO) UpdateStatus(ctx context.Context, verificationCodeID string, status model.VerificationStatus) error {
	result := verificationCodeDAO.db.WithContext(ctx).
		Model(&model.VerificationCode{}).
		Where("id = ?", verificationCodeID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
