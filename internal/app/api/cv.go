package api

import (
	"encoding/json"

	"lancini/internal/app/model"
)

// CV fetches the signed-in user's CV (GET /cv). A backend 404 yields an empty CV.
func (s *Conn) CV() (*model.CV, error) {
	var raw json.RawMessage
	if err := s.get("/cv", nil, &raw); err != nil {
		if StatusOf(err) == 404 {
			return &model.CV{}, nil
		}
		return nil, err
	}

	var wrapped struct {
		CV *model.CV `json:"cv"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.CV != nil {
		return wrapped.CV, nil
	}

	cv := &model.CV{}
	if err := json.Unmarshal(raw, cv); err != nil {
		return nil, &Error{Kind: KindDecode, Op: "GET /cv", Err: err}
	}
	return cv, nil
}

// SaveSkills replaces the CV skill list (PUT /cv/skills).
func (s *Conn) SaveSkills(skills []model.Skill) error {
	return s.put("/cv/skills", struct {
		Skills []model.Skill `json:"skills"`
	}{Skills: skills}, nil)
}
