package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// ProjectListData feeds the project list template.
type ProjectListData struct {
	Projects []*models.Project
	Search   string
}

// ProjectFormData feeds the project create and edit forms.
type ProjectFormData struct {
	Project *models.Project
	Videos  []*models.Video
	Members map[string]bool
}

// ProjectDetailData feeds the project detail template.
type ProjectDetailData struct {
	Project *models.Project
	Videos  []*models.Video
}

func (h *WebHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	projects, err := h.projects.List(map[string]any{"search": search})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "projects_list.html", "Projects", ProjectListData{Projects: projects, Search: search})
}

func (h *WebHandler) newProjectForm(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.List(nil)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "project_form.html", "New project", ProjectFormData{
		Videos:  videos,
		Members: map[string]bool{},
	})
}

func (h *WebHandler) createProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/projects/new", "invalid form submission")
		return
	}

	project := models.NewProject(0, models.ProjectData{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	})
	project.SetVideoIDs(r.Form["video_ids"])

	if err := h.projects.Create(project); err != nil {
		h.redirectError(w, r, "/projects/new", err.Error())
		return
	}

	h.recordActivity("create", "project", project.ID(), fmt.Sprintf("Created project %q", project.Name()))
	h.redirect(w, r, "/projects/"+project.ID(), "Project created.")
}

func (h *WebHandler) projectDetail(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrProjectNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	videos := make([]*models.Video, 0, len(project.VideoIDs()))
	for _, videoID := range project.VideoIDs() {
		video, err := h.videos.Get(videoID)
		if errors.Is(err, shared.ErrVideoNotFound) {
			continue
		}
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		videos = append(videos, video)
	}

	h.render(w, r, "project_detail.html", project.Name(), ProjectDetailData{Project: project, Videos: videos})
}

func (h *WebHandler) editProjectForm(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrProjectNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	videos, err := h.videos.List(nil)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	members := make(map[string]bool, len(project.VideoIDs()))
	for _, videoID := range project.VideoIDs() {
		members[videoID] = true
	}

	h.render(w, r, "project_form.html", "Edit project", ProjectFormData{
		Project: project,
		Videos:  videos,
		Members: members,
	})
}

func (h *WebHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrProjectNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/projects/"+project.ID()+"/edit", "invalid form submission")
		return
	}

	project.SetName(r.FormValue("name"))
	project.SetDescription(r.FormValue("description"))
	project.SetIsActive(r.FormValue("is_active") != "")
	project.SetVideoIDs(r.Form["video_ids"])

	if err := h.projects.Update(project); err != nil {
		h.redirectError(w, r, "/projects/"+project.ID()+"/edit", err.Error())
		return
	}

	h.recordActivity("update", "project", project.ID(), fmt.Sprintf("Updated project %q", project.Name()))
	h.redirect(w, r, "/projects/"+project.ID(), "Project updated.")
}

func (h *WebHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.projects.Delete(id); err != nil {
		if errors.Is(err, shared.ErrProjectNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.recordActivity("delete", "project", id, "Deleted project")
	h.redirect(w, r, "/projects", "Project deleted.")
}
