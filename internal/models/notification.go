package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeThreadReply   NotificationType = "thread_reply"   // someone replied to your thread
	NotificationTypeReplyReply    NotificationType = "reply_reply"    // someone replied to your reply
	NotificationTypeCommentReply  NotificationType = "comment_reply"  // someone replied to your player comment
	NotificationTypePlayerThread  NotificationType = "player_thread"  // new thread about a player you follow
	NotificationTypePlayerComment NotificationType = "player_comment" // new comment about a player you follow
	NotificationTypePlayerPoll    NotificationType = "player_poll"    // new poll about a player you follow
	NotificationTypeReport        NotificationType = "report"
	NotificationTypeSystem        NotificationType = "system"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActorID   *uint            `gorm:"index" json:"actor_id"` // Sender
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Reason    string           `gorm:"type:text" json:"reason"`
	Link      string           `gorm:"size:200" json:"link"` // SPA route of the subject content
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
