package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"lancini/internal/app/model"
)

// Conversations lists conversation summaries in backend order (GET /messages/conversations).
func (s *Conn) Conversations() ([]model.Conversation, error) {
	var raw json.RawMessage
	if err := s.get("/messages/conversations", nil, &raw); err != nil {
		return nil, err
	}

	convs, err := decodeList[model.Conversation](raw, "conversations")
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "GET /messages/conversations", Err: err}
	}
	return convs, nil
}

// Thread fetches the message history with one partner
// (GET /messages/conversations/{partnerId}).
func (s *Conn) Thread(partnerID string) (*model.Thread, error) {
	path := "/messages/conversations/" + url.PathEscape(partnerID)

	var raw json.RawMessage
	if err := s.get(path, nil, &raw); err != nil {
		return nil, err
	}

	thread := &model.Thread{}
	if err := json.Unmarshal(raw, thread); err == nil && thread.Messages != nil {
		return thread, nil
	}

	msgs, err := decodeList[model.Message](raw, "messages")
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "GET " + path, Err: err}
	}
	return &model.Thread{Partner: model.PartnerSummary{ID: partnerID}, Messages: msgs}, nil
}

var errMissingListKey = errors.New("response object has no list under key")

// decodeList accepts a bare JSON array or an object holding the array under key.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	var list []T
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			list = []T{}
		}
		return list, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}

	inner, ok := wrapped[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errMissingListKey, key)
	}
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}
