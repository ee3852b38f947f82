package web

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"eisen/internal/grouping"
	"eisen/internal/model"
)

// similarResult is the last similarity grouping run from the Groups page.
// Pages and the groups audio summary read it; only POST /groups/similar
// calls the embedding provider.
type similarResult struct {
	Groups [][]model.Task
	Err    string
	At     time.Time
}

type similarCache struct {
	mu   sync.Mutex
	last *similarResult
}

func (c *similarCache) get() (similarResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return similarResult{}, false
	}
	return *c.last, true
}

func (c *similarCache) set(r similarResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = &r
}

func (s *Server) handleSimilarGroups(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Grouper.Available() {
		s.unavailable(w, "similarity grouping", grouping.ErrUnavailable)
		return
	}
	ctx := r.Context()
	all, err := s.cfg.Repo.ListTasks(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res := similarResult{At: time.Now()}
	groups, err := s.cfg.Grouper.Group(ctx, all)
	if err != nil {
		if !errors.Is(err, grouping.ErrUnavailable) {
			s.log.Warn("similarity grouping failed", "err", err)
		}
		res.Err = "feature unavailable"
	} else {
		res.Groups = groups
	}
	s.similar.set(res)
	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}
