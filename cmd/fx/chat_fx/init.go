package chat_fx

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"mindcare/internal/config"
	"mindcare/internal/services"
	"mindcare/pkg/metrics"
	"mindcare/pkg/utils"
)

var Module = fx.Provide(
	provideCompletionClient,
	provideSentimentClassifier,
	provideChatService)

// provideCompletionClient creates the chat model client selected by AI_PROVIDER.
func provideCompletionClient(lc fx.Lifecycle, cfg config.Config) (utils.CompletionClientInterface, error) {
	slog.Info("initializing completion client", "provider", cfg.AIProvider, "model", cfg.AIModel)

	client, err := utils.NewCompletionClient(context.Background(), cfg.AIProvider, cfg.AIAPIKey, cfg.AIModel)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func provideSentimentClassifier(client utils.CompletionClientInterface, cfg config.Config, recorder metrics.Recorder) services.SentimentClassifier {
	fallback := services.KeywordSentiment{PointsPerHit: cfg.SentimentPointsPerHit}
	return services.NewLLMSentiment(client, fallback, cfg.AITimeout, recorder)
}

func provideChatService(client utils.CompletionClientInterface, sentiment services.SentimentClassifier, cfg config.Config) services.ChatServiceInterface {
	return services.NewChatService(client, sentiment, cfg.AITimeout)
}
