package entity

import (
	"sort"
	"strings"
	"time"
)

type Chat struct {
	ID           string   `json:"id" firestore:"id"`
	Participants []string `json:"participants" firestore:"participants"`
	IsGroupChat  bool     `json:"is_group_chat" firestore:"isGroupChat"`
	GroupName    string   `json:"group_name,omitempty" firestore:"groupName,omitempty"`
	GroupAdmin   string   `json:"group_admin,omitempty" firestore:"groupAdmin,omitempty"`

	// PairKey identifies the unique direct chat for an unordered pair of
	// participants. Empty for group chats.
	PairKey string `json:"-" firestore:"pairKey,omitempty"`

	LastMessageID string `json:"last_message_id,omitempty" firestore:"lastMessageId,omitempty"`

	// MessageCount doubles as the sequence counter for message appends.
	MessageCount int64 `json:"message_count" firestore:"messageCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// DirectPairKey builds the canonical key for a two-participant chat,
// independent of argument order.
func DirectPairKey(userID1, userID2 string) string {
	pair := []string{userID1, userID2}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}
