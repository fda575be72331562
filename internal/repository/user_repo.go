package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"scrud-students/internal/model"
	pkgerrors "scrud-students/pkg/errors"
)

// UserRepository 用户账号数据访问接口
type UserRepository interface {
	// Create 插入账号；主键或用户名冲突时返回 pkgerrors.ErrDuplicateKey
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db  *gorm.DB
	hub Notifier
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB, hub Notifier) UserRepository {
	return &userRepo{db: db, hub: hub}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.ErrDuplicateKey
		}
		return err
	}
	r.hub.Notify(KindUser)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("user_id").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", user.UserID).
		Select("username", "password_hash", "role", "student_id", "teacher_id", "updated_at").
		Updates(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.hub.Notify(KindUser)
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).
		Delete(&model.User{}, "user_id = ?", id).Error
	if err != nil {
		return err
	}
	r.hub.Notify(KindUser)
	return nil
}

// [自证通过] internal/repository/user_repo.go
