package api

import (
	"encoding/json"
	"net/url"

	"lancini/internal/app/model"
)

// Projects lists showcase projects (GET /projects).
func (s *Conn) Projects() ([]model.Project, error) {
	var raw json.RawMessage
	if err := s.get("/projects", nil, &raw); err != nil {
		return nil, err
	}

	projects, err := decodeList[model.Project](raw, "projects")
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "GET /projects", Err: err}
	}
	return projects, nil
}

// LikeResult is the backend's answer to a like toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// LikeProject toggles the current user's like on a project (POST /projects/{id}/like).
func (s *Conn) LikeProject(id string) (*LikeResult, error) {
	var out LikeResult
	if err := s.post("/projects/"+url.PathEscape(id)+"/like", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
