package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"lancini/internal/app/model"
	"lancini/internal/app/widgets"
	"lancini/internal/pkg/logx"
)

const msgLikeFailed = "Could not update your like. Please try again."

type ProjectCard struct {
	model.Project
	ImageURL string
	OpenURL  string
}

type ProjectsData struct {
	Projects []ProjectCard
	Dialog   *widgets.ProjectDialog
	Notice   string
}

func projectURL(id string) string {
	return "/dashboard/projects?project=" + url.QueryEscape(id)
}

func likeURL(id string) string {
	return "/dashboard/projects/" + url.PathEscape(id) + "/like"
}

// HandleProjects lists projects and opens the dialog of the one selected by the
// "project" query parameter. The like state shown by the dialog is carried by the
// "liked" parameter set after a like round trip.
func HandleProjects(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := ProjectsData{}

		projects, err := backendConn(r).Projects()
		if err != nil {
			logx.Ctx(r.Context()).Error().Err(err).Msg("projects: failed to fetch projects")
		}

		for _, p := range projects {
			data.Projects = append(data.Projects, ProjectCard{
				Project:  p,
				ImageURL: deps.FullAssetURL(r.Context(), p.Image),
				OpenURL:  projectURL(p.ID),
			})
		}

		if id := q.Get("project"); id != "" {
			if p := model.FindProject(projects, id); p != nil {
				dialog := widgets.NewProjectDialog(
					*p,
					deps.FullAssetURL(r.Context(), p.Image),
					q.Get("liked") == "1",
					false,
					likeURL(p.ID),
				)
				data.Dialog = &dialog
			}
		}

		if q.Get("like_error") != "" {
			data.Notice = msgLikeFailed
		}

		deps.render(w, r, http.StatusOK, "projects", "Projects", "projects", data)
	}
}

// HandleLikeProject toggles the like on the backend and reopens the dialog with the
// new state.
func HandleLikeProject(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "projectID")
		target := projectURL(id)

		if !deps.FormLimiter.Allow(r) {
			http.Redirect(w, r, target+"&like_error=1", http.StatusSeeOther)
			return
		}

		result, err := backendConn(r).LikeProject(id)
		if err != nil {
			logx.Ctx(r.Context()).Warn().Err(err).Str("project_id", id).Msg("projects: like failed")
			http.Redirect(w, r, target+"&like_error=1", http.StatusSeeOther)
			return
		}

		if result.Liked {
			target += "&liked=1"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
