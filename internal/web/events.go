package web

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// resourceHub fans out "something changed" to every open event stream.
type resourceHub struct {
	mu      sync.Mutex
	subs    map[chan struct{}]struct{}
	version int
}

func newResourceHub() *resourceHub {
	return &resourceHub{subs: map[chan struct{}]struct{}{}}
}

func (h *resourceHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *resourceHub) broadcast() {
	h.mu.Lock()
	h.version++
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *resourceHub) currentVersion() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}

func (h *resourceHub) subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// changed is called after every successful mutation.
func (s *Server) changed() { s.hub.broadcast() }

// views rendered into #eisen-main by the event stream, keyed by ?view=.
var streamViews = map[string]string{
	"home":    "home_main",
	"matrix":  "matrix_main",
	"ivy-lee": "ivylee_main",
	"groups":  "groups_main",
	"tags":    "tags_main",
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	view := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("view")))
	tpl, ok := streamViews[view]
	if !ok {
		http.Error(w, "unknown view", http.StatusBadRequest)
		return
	}
	s.serveDatastarStream(w, r, func() (string, error) {
		vm, err := s.viewModel(r, view)
		if err != nil {
			return "", err
		}
		return s.renderTemplate(tpl, vm)
	})
}

func (s *Server) serveDatastarStream(w http.ResponseWriter, r *http.Request, renderMain func() (string, error)) {
	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(map[string]any{"version": s.hub.currentVersion()})

	ch, cancel := s.hub.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			html, err := renderMain()
			if err != nil {
				s.log.Warn("render stream view", "err", err)
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			if strings.TrimSpace(html) == "" {
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector("#eisen-main"), datastar.WithMode(datastar.ElementPatchModeOuter))
			_ = sse.MarshalAndPatchSignals(map[string]any{"version": s.hub.currentVersion()})
		}
	}
}
