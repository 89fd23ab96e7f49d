package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/internal/model"
)

type UserRepository interface {
    Create(ctx context.Context, user *model.User) error
    GetByID(ctx context.Context, id string) (*model.User, error)
    GetByUsername(ctx context.Context, username string) (*model.User, error)
    // PointsByIDs 批量读取积分总额（读路径权威分用）
    PointsByIDs(ctx context.Context, ids []string) (map[string]int64, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
    if user.ID == "" {
        user.ID = uuid.New().String()
    }
    return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
    var user model.User
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
        return nil, err
    }
    return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
    var user model.User
    if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
        return nil, err
    }
    return &user, nil
}

func (r *userRepository) PointsByIDs(ctx context.Context, ids []string) (map[string]int64, error) {
    out := make(map[string]int64, len(ids))
    if len(ids) == 0 {
        return out, nil
    }
    var rows []struct {
        ID     string
        Points int64
    }
    if err := r.db.WithContext(ctx).Model(&model.User{}).
        Select("id", "points").
        Where("id IN ?", ids).
        Scan(&rows).Error; err != nil {
        return nil, err
    }
    for _, row := range rows {
        out[row.ID] = row.Points
    }
    return out, nil
}
