package handler

import (
	"net/http"

	"lancini/internal/app/api"
	"lancini/internal/app/widgets"
	"lancini/internal/pkg/errs"
	"lancini/internal/pkg/logx"
)

const (
	msgSkillsSaved      = "Skills saved"
	msgSkillsSaveFailed = "Failed to save skills"
	msgCVLoadFailed     = "Failed to load your CV"
)

type CVData struct {
	Editor  widgets.TagEditor
	Success string
	Error   string
}

// HandleCVPage renders the skill editor seeded with the saved skills.
func HandleCVPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := CVData{}

		cv, err := backendConn(r).CV()
		if err != nil {
			logx.Ctx(r.Context()).Error().Err(err).Msg("cv: failed to fetch cv")
			data.Error = msgCVLoadFailed
		} else {
			data.Editor = widgets.NewTagEditor(cv.SkillNames(), "")
		}

		deps.render(w, r, http.StatusOK, "cv", "CV", "cv", data)
	}
}

// HandleCVAction applies one editor action to the tags posted with the form. Adding
// and removing only re-render; "save" persists the tags as CV skills.
func HandleCVAction(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := r.PostFormValue("input")
		editor := widgets.NewTagEditor(r.PostForm["tag"], input)
		data := CVData{}

		switch remove := r.PostFormValue("remove"); {
		case remove != "":
			editor = editor.Remove(remove)

		case r.PostFormValue("action") == "save":
			if !deps.FormLimiter.Allow(r) {
				data.Error = errs.NewError(errs.ErrRateLimitExceeded).Message
				break
			}

			conn := backendConn(r)
			cv, err := conn.CV()
			if err != nil {
				logx.Ctx(r.Context()).Error().Err(err).Msg("cv: failed to fetch cv before save")
				data.Error = api.MessageOr(err, msgSkillsSaveFailed)
				break
			}

			skills := cv.SkillsFromNames(editor.Tags)
			for _, s := range skills {
				if customErr := s.Validate(); customErr != nil {
					data.Error = customErr.Message
					break
				}
			}
			if data.Error != "" {
				break
			}

			if err := conn.SaveSkills(skills); err != nil {
				logx.Ctx(r.Context()).Warn().Err(err).Msg("cv: failed to save skills")
				data.Error = api.MessageOr(err, msgSkillsSaveFailed)
				break
			}
			data.Success = msgSkillsSaved

		default:
			editor = editor.Add()
		}

		data.Editor = editor
		deps.render(w, r, http.StatusOK, "cv", "CV", "cv", data)
	}
}
