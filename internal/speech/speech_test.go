package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eisen/internal/model"

	"google.golang.org/api/option"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":        DefaultLocale,
		"pt-BR":   "pt-BR",
		"pt-PT":   "pt-PT",
		"en":      "en-US",
		"en-GB":   "en-US",
		"???":     DefaultLocale,
		" pt-pt ": "pt-PT",
	}
	for in, want := range cases {
		if got := NormalizeLocale(in); got != want {
			t.Fatalf("NormalizeLocale(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestUrgentSummary(t *testing.T) {
	one := []model.Task{{Title: "Pagar conta"}}
	two := []model.Task{{Title: "Pagar conta"}, {Title: "Ligar"}}
	cases := []struct {
		name   string
		locale string
		tasks  []model.Task
		want   string
	}{
		{"pt empty", "pt-BR", nil, "Ótima notícia! Você não tem nenhuma tarefa urgente para hoje. Bom trabalho!"},
		{"pt one", "pt-BR", one, "Olá! Você tem 1 tarefa urgente para hoje. São elas: 1. Pagar conta."},
		{"pt two", "pt-PT", two, "Olá! Você tem 2 tarefas urgentes para hoje. São elas: 1. Pagar conta. 2. Ligar."},
		{"en two", "en-US", two, "Hello! You have 2 urgent tasks for today. They are: 1. Pagar conta. 2. Ligar."},
		{"en empty", "en", nil, "Great news! You have no urgent tasks for today. Good job!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UrgentSummary(tc.locale, tc.tasks); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGroupSummary(t *testing.T) {
	groups := [][]model.Task{{{Title: "buy milk"}, {Title: "buy bread"}}}
	if got, want := GroupSummary("pt-BR", groups), "Encontrei 1 grupos de tarefas. O grupo 1 parece ser sobre buy milk e contém 2 tarefas."; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got, want := GroupSummary("en-US", groups), "I found 1 groups of tasks. Group 1 seems to be about buy milk and has 2 tasks."; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGoogleTTS_Synthesize(t *testing.T) {
	var got struct {
		Input struct {
			Text string `json:"text"`
		} `json:"input"`
		Voice struct {
			LanguageCode string `json:"languageCode"`
		} `json:"voice"`
		AudioConfig struct {
			AudioEncoding string  `json:"audioEncoding"`
			SpeakingRate  float64 `json:"speakingRate"`
		} `json:"audioConfig"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text:synthesize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("ID3-fake-mp3")),
		})
	}))
	defer srv.Close()

	tts, err := NewGoogleTTS(context.Background(), "", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	audio, err := tts.Synthesize(context.Background(), "Olá", Voice{Locale: "pt-PT", Slow: true})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "ID3-fake-mp3" {
		t.Fatalf("expected relayed bytes, got %q", audio)
	}
	if got.Input.Text != "Olá" || got.Voice.LanguageCode != "pt-PT" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.AudioConfig.AudioEncoding != "MP3" || got.AudioConfig.SpeakingRate != slowRate {
		t.Fatalf("unexpected audio config: %+v", got.AudioConfig)
	}
}

func TestNewGoogleTTS_NoKey(t *testing.T) {
	if _, err := NewGoogleTTS(context.Background(), " "); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
