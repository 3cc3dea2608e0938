package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadAggregation(t *testing.T) {
	convs := []Conversation{{UnreadCount: 0}, {UnreadCount: 2}, {UnreadCount: 3}}

	total := TotalUnread(convs)
	assert.Equal(t, 5, total)
	assert.Equal(t, "5 unread messages", UnreadSummary(total))
}

func TestUnreadSummary(t *testing.T) {
	assert.Equal(t, "All caught up!", UnreadSummary(0))
	assert.Equal(t, "1 unread message", UnreadSummary(1))
	assert.Equal(t, "2 unread messages", UnreadSummary(2))
	assert.Equal(t, 0, TotalUnread(nil))
}

func TestUserAcceptsMongoID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"64f1","email":"a@b.tn","role":"student"}`), &u))
	assert.Equal(t, "64f1", u.ID)
	assert.Equal(t, RoleStudent, u.Role)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"7","_id":"ignored","email":"x@y.tn","role":"enterprise"}`), &u))
	assert.Equal(t, "7", u.ID)
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Mejdi", User{Name: "Mejdi", Email: "m@x.tn"}.DisplayName())
	assert.Equal(t, "m.ben", User{Email: "m.ben@x.tn"}.DisplayName())
	assert.Equal(t, "M", User{Email: "m.ben@x.tn"}.Initial())
	assert.Equal(t, "?", User{}.Initial())
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("guest").Valid())
	assert.Equal(t, "Enterprise", RoleEnterprise.Label())
}

func TestConversationDecoding(t *testing.T) {
	raw := `[{"partnerId":"p1","partner":{"_id":"p1","email":"hr@corp.tn","role":"enterprise"},
		"lastMessage":{"content":"Hello","createdAt":"2026-10-01T10:00:00Z"},"unreadCount":2}]`

	var convs []Conversation
	require.NoError(t, json.Unmarshal([]byte(raw), &convs))
	require.Len(t, convs, 1)
	assert.Equal(t, "p1", convs[0].Partner.ID)
	assert.Equal(t, "Hello", convs[0].LastMessage.Content)
	assert.Equal(t, 2, convs[0].UnreadCount)
}

func TestConversationPartnerIDFallback(t *testing.T) {
	var convs []Conversation
	require.NoError(t, json.Unmarshal([]byte(`[
		{"partner":{"_id":"p9","email":"hr@corp.tn","role":"enterprise"},"unreadCount":1},
		{"partnerId":"p1","partner":{"_id":"other"}}
	]`), &convs))

	require.Len(t, convs, 2)
	assert.Equal(t, "p9", convs[0].PartnerID)
	assert.Equal(t, 1, convs[0].UnreadCount)
	assert.Equal(t, "p1", convs[1].PartnerID)
}

func TestSkillValidate(t *testing.T) {
	assert.Nil(t, Skill{Name: "Go", Level: 5}.Validate())
	assert.NotNil(t, Skill{Name: "Go", Level: 0}.Validate())
	assert.NotNil(t, Skill{Name: "Go", Level: 6}.Validate())
}

func TestSkillsFromNames(t *testing.T) {
	cv := CV{Skills: []Skill{{Name: "Go", Level: 5}, {Name: "SQL", Level: 2}}}
	assert.Equal(t, []string{"Go", "SQL"}, cv.SkillNames())

	got := cv.SkillsFromNames([]string{"SQL", "Docker"})
	assert.Equal(t, []Skill{{Name: "SQL", Level: 2}, {Name: "Docker", Level: DefaultSkillLevel}}, got)
}

func TestFindProject(t *testing.T) {
	ps := []Project{{ID: "a"}, {ID: "b", Title: "B"}}
	assert.Equal(t, "B", FindProject(ps, "b").Title)
	assert.Nil(t, FindProject(ps, "c"))
}
