package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PartnerSummary is the other participant of a conversation.
type PartnerSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (p *PartnerSummary) UnmarshalJSON(data []byte) error {
	type plain PartnerSummary
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// MessagePreview is the last message of a conversation.
type MessagePreview struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Conversation is one row of the messages list.
type Conversation struct {
	PartnerID   string         `json:"partnerId"`
	Partner     PartnerSummary `json:"partner"`
	LastMessage MessagePreview `json:"lastMessage"`
	UnreadCount int            `json:"unreadCount"`
}

// UnmarshalJSON falls back to the partner's id when "partnerId" is absent.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	type plain Conversation
	if err := json.Unmarshal(data, (*plain)(c)); err != nil {
		return err
	}
	if c.PartnerID == "" {
		c.PartnerID = c.Partner.ID
	}
	return nil
}

// Message is one entry of a conversation thread.
type Message struct {
	ID         string    `json:"_id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Thread is the message history with one partner.
type Thread struct {
	Partner  PartnerSummary `json:"partner"`
	Messages []Message      `json:"messages"`
}

// TotalUnread sums the unread counts of all conversations.
func TotalUnread(conversations []Conversation) int {
	total := 0
	for _, c := range conversations {
		total += c.UnreadCount
	}
	return total
}

// UnreadSummary is the messages page header for the given unread total.
func UnreadSummary(total int) string {
	switch {
	case total <= 0:
		return "All caught up!"
	case total == 1:
		return "1 unread message"
	default:
		return fmt.Sprintf("%d unread messages", total)
	}
}
