package cli

import (
	"context"

	"eisen/internal/grouping"
	"eisen/internal/speech"
)

func (app *App) grouper() *grouping.Grouper {
	var emb grouping.Embedder
	if key := app.cfg.Google.APIKey; key != "" {
		emb = grouping.NewGeminiClient(key, grouping.WithModel(app.cfg.Google.EmbeddingModel))
	}
	return grouping.NewGrouper(emb, app.cfg.Grouping.Threshold, app.log)
}

func (app *App) synthesizer(ctx context.Context) (speech.Synthesizer, error) {
	return speech.NewGoogleTTS(ctx, app.cfg.Google.APIKey)
}
