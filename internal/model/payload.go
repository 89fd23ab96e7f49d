package model

// 每种事件类型一个强类型载荷，由分发器按 event_type 解码。

// PostCreatedPayload post_created 事件载荷
type PostCreatedPayload struct {
    PostID    string   `json:"post_id"`
    AuthorID  string   `json:"author_id"`
    PostType  string   `json:"post_type"`
    Latitude  *float64 `json:"latitude,omitempty"`
    Longitude *float64 `json:"longitude,omitempty"`
    CityID    string   `json:"city_id,omitempty"`
}

// LikeAddedPayload like_added 事件载荷
type LikeAddedPayload struct {
    PostID string `json:"post_id"`
    UserID string `json:"user_id"`
}

// CommentAddedPayload comment_added 事件载荷
type CommentAddedPayload struct {
    PostID    string `json:"post_id"`
    CommentID string `json:"comment_id"`
    UserID    string `json:"user_id"`
}

// FollowAddedPayload follow_added 事件载荷
type FollowAddedPayload struct {
    FollowerID  string `json:"follower_id"`
    FollowingID string `json:"following_id"`
}

// RSVPChangedPayload rsvp_changed 事件载荷
type RSVPChangedPayload struct {
    EventID string `json:"event_id"`
    UserID  string `json:"user_id"`
    Status  string `json:"status"` // accepted / declined
}
