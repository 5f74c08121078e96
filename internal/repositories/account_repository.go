package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mindcare/internal/models/db_models"
	"mindcare/pkg/utils"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	Update(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	FindByUsername(ctx context.Context, username string) (*db_models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	err := a.db.WithContext(ctx).Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateIdentity
	}
	return err
}

func (a *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	err := a.db.WithContext(ctx).
		Model(account).
		Select("username", "email", "password_hash", "preferences", "updated_at").
		Updates(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateIdentity
	}
	return err
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	return a.findOne(ctx, "id = ?", id)
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return a.findOne(ctx, "email = ?", email)
}

func (a *accountRepository) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	return a.findOne(ctx, "LOWER(username) = LOWER(?)", username)
}

func (a *accountRepository) findOne(ctx context.Context, query string, arg interface{}) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, query, arg).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}
