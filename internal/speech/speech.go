// Package speech turns summaries into audio through a text-to-speech
// provider. Audio is returned as opaque MP3 bytes.
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/texttospeech/v1"
)

// ErrUnavailable means no speech provider is configured.
var ErrUnavailable = errors.New("speech unavailable: no API key configured")

const slowRate = 0.75

type Voice struct {
	Locale string `json:"locale"`
	Slow   bool   `json:"slow"`
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, v Voice) ([]byte, error)
}

// GoogleTTS is a Synthesizer backed by Cloud Text-to-Speech.
type GoogleTTS struct {
	srv *texttospeech.Service
}

// NewGoogleTTS authenticates with an API key. Extra options are appended
// (endpoint overrides in tests).
func NewGoogleTTS(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GoogleTTS, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" && len(opts) == 0 {
		return nil, ErrUnavailable
	}
	all := opts
	if apiKey != "" {
		all = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}
	srv, err := texttospeech.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("texttospeech: new service: %w", err)
	}
	return &GoogleTTS{srv: srv}, nil
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text string, v Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("texttospeech: empty text")
	}
	rate := 1.0
	if v.Slow {
		rate = slowRate
	}
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{LanguageCode: NormalizeLocale(v.Locale)},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  rate,
		},
	}
	resp, err := g.srv.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("texttospeech: synthesize: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("texttospeech: decode audio: %w", err)
	}
	return audio, nil
}
