package web

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"eisen/internal/grouping"
	"eisen/internal/speech"
)

const voiceCookie = "eisen_voice"

type voicePrefs struct {
	Locale string `json:"locale"`
	Slow   bool   `json:"slow,omitempty"`
}

func encodeVoice(v voicePrefs) string {
	b, _ := json.Marshal(v)
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeVoice(raw string) (voicePrefs, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return voicePrefs{}, errors.New("invalid voice cookie")
	}
	var v voicePrefs
	if err := json.Unmarshal(b, &v); err != nil {
		return voicePrefs{}, errors.New("invalid voice cookie")
	}
	v.Locale = speech.NormalizeLocale(v.Locale)
	return v, nil
}

// voiceForRequest reads the voice cookie, falling back to the server default.
func (s *Server) voiceForRequest(r *http.Request) voicePrefs {
	def := voicePrefs{Locale: s.cfg.DefaultLocale, Slow: s.cfg.DefaultSlow}
	c, err := r.Cookie(voiceCookie)
	if err != nil {
		return def
	}
	v, err := decodeVoice(c.Value)
	if err != nil {
		return def
	}
	return v
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := voicePrefs{
		Locale: speech.NormalizeLocale(r.PostForm.Get("locale")),
		Slow:   formBool(r.PostForm.Get("slow")),
	}
	http.SetCookie(w, &http.Cookie{
		Name:     voiceCookie,
		Value:    encodeVoice(v),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	redirectBack(w, r, "/")
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func (s *Server) handleSummaryAudio(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Synth == nil {
		http.Error(w, "feature unavailable: speech is not configured", http.StatusServiceUnavailable)
		return
	}
	voice := s.voiceForRequest(r)
	ctx := r.Context()

	var text string
	switch strings.TrimSpace(r.URL.Query().Get("kind")) {
	case "", "urgent":
		urgent, err := s.cfg.Repo.UrgentTasks(ctx)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		text = speech.UrgentSummary(voice.Locale, urgent)
	case "groups":
		last, ok := s.similar.get()
		if !ok || last.Err != "" {
			http.Error(w, "no similarity groups yet: run grouping first", http.StatusConflict)
			return
		}
		text = speech.GroupSummary(voice.Locale, last.Groups)
	default:
		http.Error(w, "unknown summary kind", http.StatusBadRequest)
		return
	}

	audio, err := s.cfg.Synth.Synthesize(ctx, text, speech.Voice{Locale: voice.Locale, Slow: voice.Slow})
	if err != nil {
		s.unavailable(w, "speech", err)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (s *Server) unavailable(w http.ResponseWriter, feature string, err error) {
	if !errors.Is(err, speech.ErrUnavailable) && !errors.Is(err, grouping.ErrUnavailable) {
		s.log.Warn(feature+" failed", "err", err)
	}
	http.Error(w, "feature unavailable: "+feature, http.StatusServiceUnavailable)
}
