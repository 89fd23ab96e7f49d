package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/internal/model"
)

type PostRepository interface {
    GetByID(ctx context.Context, id string) (*model.Post, error)
    ListByIDs(ctx context.Context, ids []string) ([]*model.Post, error)
    IncrementLikeCount(ctx context.Context, id string) error
    IncrementCommentCount(ctx context.Context, id string) error
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
    var post model.Post
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
        return nil, err
    }
    return &post, nil
}

func (r *postRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Post, error) {
    if len(ids) == 0 {
        return nil, nil
    }
    var res []*model.Post
    err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
    return res, err
}

func (r *postRepository) IncrementLikeCount(ctx context.Context, id string) error {
    return r.db.WithContext(ctx).Model(&model.Post{}).
        Where("id = ?", id).
        Update("like_count", gorm.Expr("like_count + 1")).Error
}

func (r *postRepository) IncrementCommentCount(ctx context.Context, id string) error {
    return r.db.WithContext(ctx).Model(&model.Post{}).
        Where("id = ?", id).
        Update("comment_count", gorm.Expr("comment_count + 1")).Error
}
