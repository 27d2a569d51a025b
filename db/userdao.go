package db

import (
	"context"
	"errors"

	"escapenote-server/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileUpdate holds the profile fields a user can edit, nil fields are left unchanged
type ProfileUpdate struct {
	Avatar    *string
	Username  *string
	Headline  *string
	Bio       *string
	Website   *string
	Instagram *string
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

func (userDAO *UserDAO) GetUserById(ctx context.Context, userID string) (model.User, error) {
	return userDAO.getUser(ctx, "id = ?", userID)
}

func (userDAO *UserDAO) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return userDAO.getUser(ctx, "email = ?", email)
}

func (userDAO *UserDAO) GetUserByNickname(ctx context.Context, nickname string) (model.User, error) {
	return userDAO.getUser(ctx, "nickname = ?", nickname)
}

func (userDAO *UserDAO) getUser(ctx context.Context, condition string, value string) (model.User, error) {
	var user model.User
	result := userDAO.db.WithContext(ctx).Where(condition, value).First(&user)
	if result.Error != nil {
		return model.User{}, translateError(result.Error)
	}

	// not stored, derived from the password hash
	user.HasPassword = user.Password != ""

	return user, nil
}

func (userDAO *UserDAO) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := userDAO.GetUserByEmail(ctx, email)
	return exists(err)
}

func (userDAO *UserDAO) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	_, err := userDAO.GetUserByNickname(ctx, nickname)
	return exists(err)
}

func exists(err error) (bool, error) {
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddUser creates the user, with the social account when provider is not empty
func (userDAO *UserDAO) AddUser(ctx context.Context, user model.User, provider string) (model.User, error) {
	user.UserID = uuid.NewString()

	err := userDAO.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Create(&user)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if provider == "" {
			return nil
		}
		return addAccount(tx, user.UserID, provider)
	})
	if err != nil {
		return model.User{}, err
	}

	user.HasPassword = user.Password != ""
	return user, nil
}

func (userDAO *UserDAO) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (model.User, error) {
	updates := map[string]interface{}{}
	setIfPresent(updates, "avatar", update.Avatar)
	setIfPresent(updates, "username", update.Username)
	setIfPresent(updates, "headline", update.Headline)
	setIfPresent(updates, "bio", update.Bio)
	setIfPresent(updates, "website", update.Website)
	setIfPresent(updates, "instagram", update.Instagram)

	if len(updates) > 0 {
		err := userDAO.updateColumns(ctx, "id = ?", userID, updates)
		if err != nil {
			return model.User{}, err
		}
	}

	return userDAO.GetUserById(ctx, userID)
}

func setIfPresent(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

func (userDAO *UserDAO) SetPassword(ctx context.Context, userID string, hashedPassword string) error {
	return userDAO.updateColumns(ctx, "id = ?", userID, map[string]interface{}{"password": hashedPassword})
}

func (userDAO *UserDAO) SetPasswordByEmail(ctx context.Context, email string, hashedPassword string) error {
	return userDAO.updateColumns(ctx, "email = ?", email, map[string]interface{}{"password": hashedPassword})
}

func (userDAO *UserDAO) SetRefreshToken(ctx context.Context, userID string, refreshToken string) (model.User, error) {
	err := userDAO.updateColumns(ctx, "id = ?", userID, map[string]interface{}{"refresh_token": refreshToken})
	if err != nil {
		return model.User{}, err
	}
	return userDAO.GetUserById(ctx, userID)
}

// ClearRefreshToken is idempotent: logging out twice is not an error
func (userDAO *UserDAO) ClearRefreshToken(ctx context.Context, userID string) error {
	result := userDAO.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND refresh_token <> ?", userID, "").
		Update("refresh_token", "")
	return result.Error
}

func (userDAO *UserDAO) updateColumns(ctx context.Context, condition string, value string, updates map[string]interface{}) error {
	result := userDAO.db.WithContext(ctx).Model(&model.User{}).Where(condition, value).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureAccount links the provider to the user if it is not linked yet
func (userDAO *UserDAO) EnsureAccount(ctx context.Context, userID string, provider string) error {
	var count int64
	result := userDAO.db.WithContext(ctx).Model(&model.Account{}).Where("provider = ? AND user_id = ?", provider, userID).Count(&count)
	if result.Error != nil {
		return result.Error
	}
	if count > 0 {
		return nil
	}
	return addAccount(userDAO.db.WithContext(ctx), userID, provider)
}

func addAccount(tx *gorm.DB, userID string, provider string) error {
	account := model.Account{
		AccountID: uuid.NewString(),
		Provider:  provider,
		UserID:    userID,
	}
	return translateError(tx.Create(&account).Error)
}
