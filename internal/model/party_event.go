package model

import "time"

// RSVP 状态
const (
    RSVPAccepted = "accepted"
    RSVPDeclined = "declined"
)

// PartyEvent 线下活动
type PartyEvent struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    CreatorID string    `gorm:"type:varchar(36);index:idx_event_creator;not null"`
    Title     string    `gorm:"type:varchar(128)"`
    CityID    string    `gorm:"type:varchar(36);index"`
    StartsAt  time.Time `gorm:"index"`
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (PartyEvent) TableName() string { return "party_events" }

// RSVP 活动报名（event, user 唯一，状态可翻转）
type RSVP struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    EventID   string    `gorm:"type:varchar(36);index:idx_rsvp_pair,unique;not null"`
    UserID    string    `gorm:"type:varchar(36);index:idx_rsvp_pair,unique;not null"`
    Status    string    `gorm:"type:varchar(16);not null"`
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (RSVP) TableName() string { return "rsvps" }
