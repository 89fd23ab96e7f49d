package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/party-feed/internal/model"
)

type PartyEventRepository interface {
    Create(ctx context.Context, ev *model.PartyEvent) error
    GetByID(ctx context.Context, id string) (*model.PartyEvent, error)
    // UpsertRSVP (event, user) 唯一，状态可反复翻转
    UpsertRSVP(ctx context.Context, eventID, userID, status string) error
}

type partyEventRepository struct{ db *gorm.DB }

func NewPartyEventRepository(db *gorm.DB) PartyEventRepository {
    return &partyEventRepository{db: db}
}

func (r *partyEventRepository) Create(ctx context.Context, ev *model.PartyEvent) error {
    if ev.ID == "" {
        ev.ID = uuid.New().String()
    }
    return r.db.WithContext(ctx).Create(ev).Error
}

func (r *partyEventRepository) GetByID(ctx context.Context, id string) (*model.PartyEvent, error) {
    var ev model.PartyEvent
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ev).Error; err != nil {
        return nil, err
    }
    return &ev, nil
}

func (r *partyEventRepository) UpsertRSVP(ctx context.Context, eventID, userID, status string) error {
    rsvp := &model.RSVP{ID: uuid.New().String(), EventID: eventID, UserID: userID, Status: status}
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{
        Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
        DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
    }).Create(rsvp).Error
}
