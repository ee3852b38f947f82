package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eisen/internal/model"
	"eisen/internal/speech"
	"eisen/internal/tasks"
)

type baseVM struct {
	Title     string
	Active    string
	Now       string
	StreamURL string

	Voice           voicePrefs
	Locales         []speech.Locale
	AudioEnabled    bool
	GroupingEnabled bool
}

type homeVM struct {
	baseVM
	Urgent []model.Task
}

type matrixVM struct {
	baseVM
	Buckets []tasks.QuadrantBucket
	Tags    []string
}

type editVM struct {
	baseVM
	Task     model.Task
	Tags     []string
	Selected map[string]bool
}

type ivyLeeVM struct {
	baseVM
	Top []model.Task
	N   int
}

type groupsVM struct {
	baseVM
	TagGroups []tasks.TagGroup
	// Similar is nil until grouping has been run.
	Similar *similarResult
}

type tagsVM struct {
	baseVM
	Tags []string
}

var viewTitles = map[string]string{
	"home":    "Today",
	"matrix":  "Matrix",
	"ivy-lee": "Ivy Lee",
	"groups":  "Groups",
	"tags":    "Tags",
	"edit":    "Edit task",
}

func (s *Server) baseVMForRequest(r *http.Request, view string) baseVM {
	stream := ""
	if _, ok := streamViews[view]; ok {
		stream = "/events?view=" + url.QueryEscape(view)
	}
	return baseVM{
		Title:           viewTitles[view],
		Active:          view,
		Now:             time.Now().Format(time.DateOnly),
		StreamURL:       stream,
		Voice:           s.voiceForRequest(r),
		Locales:         speech.Locales(),
		AudioEnabled:    s.cfg.Synth != nil,
		GroupingEnabled: s.cfg.Grouper.Available(),
	}
}

// viewModel loads a fresh snapshot for one page.
func (s *Server) viewModel(r *http.Request, view string) (any, error) {
	ctx := r.Context()
	base := s.baseVMForRequest(r, view)
	repo := s.cfg.Repo

	switch view {
	case "home":
		urgent, err := repo.UrgentTasks(ctx)
		if err != nil {
			return nil, err
		}
		return homeVM{baseVM: base, Urgent: urgent}, nil
	case "matrix":
		buckets, err := repo.ByQuadrant(ctx)
		if err != nil {
			return nil, err
		}
		tags, err := repo.ListTags(ctx)
		if err != nil {
			return nil, err
		}
		return matrixVM{baseVM: base, Buckets: buckets, Tags: tags}, nil
	case "ivy-lee":
		top, err := repo.TopNPending(ctx, tasks.DefaultTopN)
		if err != nil {
			return nil, err
		}
		return ivyLeeVM{baseVM: base, Top: top, N: tasks.DefaultTopN}, nil
	case "groups":
		byTag, err := repo.GroupByTag(ctx)
		if err != nil {
			return nil, err
		}
		vm := groupsVM{baseVM: base, TagGroups: byTag}
		if last, ok := s.similar.get(); ok {
			vm.Similar = &last
		}
		return vm, nil
	case "tags":
		tags, err := repo.ListTags(ctx)
		if err != nil {
			return nil, err
		}
		return tagsVM{baseVM: base, Tags: tags}, nil
	}
	return nil, fmt.Errorf("unknown view %q", view)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, view, tpl string) {
	vm, err := s.viewModel(r, view)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeHTMLTemplate(w, tpl, vm)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "home", "home.html")
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "matrix", "matrix.html")
}

func (s *Server) handleIvyLee(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "ivy-lee", "ivylee.html")
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "groups", "groups.html")
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "tags", "tags.html")
}

type taskForm struct {
	Title       string
	Description string
	Importance  int
	Urgency     int
	DueDate     string
	Tags        []string
}

func parseScore(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, tasks.ValidationError{Field: field, Reason: "must be a whole number"}
	}
	return v, nil
}

// parseTaskForm reads the add/edit form. Tags come from the registry
// multi-select plus an optional comma-separated "new_tags" field.
func parseTaskForm(r *http.Request) (taskForm, error) {
	if err := r.ParseForm(); err != nil {
		return taskForm{}, tasks.ValidationError{Field: "form", Reason: err.Error()}
	}
	imp, err := parseScore("importance", r.PostForm.Get("importance"))
	if err != nil {
		return taskForm{}, err
	}
	urg, err := parseScore("urgency", r.PostForm.Get("urgency"))
	if err != nil {
		return taskForm{}, err
	}
	tags := append([]string{}, r.PostForm["tags"]...)
	tags = append(tags, model.SplitTags(r.PostForm.Get("new_tags"))...)
	return taskForm{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Importance:  imp,
		Urgency:     urg,
		DueDate:     strings.TrimSpace(r.PostForm.Get("due_date")),
		Tags:        model.NormalizeTags(tags),
	}, nil
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	f, err := parseTaskForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.cfg.Repo.AddTask(r.Context(), tasks.NewTask{
		Title:       f.Title,
		Description: f.Description,
		Importance:  f.Importance,
		Urgency:     f.Urgency,
		DueDate:     f.DueDate,
		Tags:        f.Tags,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("task added", "id", t.ID, "quadrant", t.Quadrant)
	s.changed()
	redirectBack(w, r, "/matrix")
}

func (s *Server) handleTaskEditForm(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	t, ok, err := s.cfg.Repo.GetTask(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, tasks.NotFoundError{Kind: "task", ID: id})
		return
	}
	tags, err := s.cfg.Repo.ListTags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	selected := map[string]bool{}
	for _, tag := range t.Tags {
		selected[tag] = true
	}
	// Tags no longer in the registry stay selectable so editing keeps them.
	for _, tag := range t.Tags {
		if !containsTag(tags, tag) {
			tags = append(tags, tag)
		}
	}
	s.writeHTMLTemplate(w, "edit.html", editVM{
		baseVM:   s.baseVMForRequest(r, "edit"),
		Task:     t,
		Tags:     tags,
		Selected: selected,
	})
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *Server) handleTaskEdit(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	f, err := parseTaskForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	changed, err := s.cfg.Repo.UpdateTask(r.Context(), id, tasks.Update{
		Title:       &f.Title,
		Description: &f.Description,
		Importance:  &f.Importance,
		Urgency:     &f.Urgency,
		DueDate:     &f.DueDate,
		Tags:        &f.Tags,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !changed {
		s.writeError(w, r, tasks.NotFoundError{Kind: "task", ID: id})
		return
	}
	s.log.Info("task updated", "id", id)
	s.changed()
	http.Redirect(w, r, "/matrix", http.StatusSeeOther)
}

func (s *Server) handleTaskDone(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	changed, err := s.cfg.Repo.MarkDone(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !changed {
		// Already done is fine; an unknown id is not.
		if _, ok, err := s.cfg.Repo.GetTask(r.Context(), id); err != nil || !ok {
			if err == nil {
				err = tasks.NotFoundError{Kind: "task", ID: id}
			}
			s.writeError(w, r, err)
			return
		}
		redirectBack(w, r, "/matrix")
		return
	}
	s.changed()
	redirectBack(w, r, "/matrix")
}

func (s *Server) handleTagCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.cfg.Repo.AddTag(r.Context(), r.PostForm.Get("name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.changed()
	redirectBack(w, r, "/tags")
}

func (s *Server) handleTagDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.cfg.Repo.DeleteTag(r.Context(), r.PostForm.Get("name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.changed()
	redirectBack(w, r, "/tags")
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(r.PostForm.Get("confirm")) != "yes" {
		s.writeError(w, r, tasks.ValidationError{Field: "confirm", Reason: `must be "yes" to delete every task`})
		return
	}
	if err := s.cfg.Repo.Reset(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("tasks reset")
	s.changed()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
