package oracle

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/climate-intel/internal/config"
	"github.com/sells-group/climate-intel/internal/resilience"
)

// Oracle answers user questions through the model API with rate limiting
// and transient-error retries.
type Oracle struct {
	client    Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	retry     resilience.Policy
}

// New builds an Oracle from configuration.
func New(cfg config.AnthropicConfig) *Oracle {
	return NewWithClient(NewClient(cfg.Key), cfg)
}

// NewWithClient builds an Oracle on an existing Client; used by tests.
func NewWithClient(client Client, cfg config.AnthropicConfig) *Oracle {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}
	policy := resilience.DefaultPolicy()
	policy.OnRetry = resilience.RetryLogger("oracle.ask")
	return &Oracle{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		retry:     policy,
	}
}

// Ask sends the system prompt and conversation to the model and returns the
// assistant's text.
func (o *Oracle) Ask(ctx context.Context, system string, messages []Message) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "oracle: rate limit wait")
	}

	resp, err := resilience.DoVal(ctx, o.retry, func(ctx context.Context) (*MessageResponse, error) {
		return o.client.CreateMessage(ctx, MessageRequest{
			Model:     o.model,
			MaxTokens: o.maxTokens,
			System:    system,
			Messages:  messages,
		})
	})
	if err != nil {
		return "", err
	}

	zap.L().Debug("oracle response",
		zap.String("model", resp.Model),
		zap.String("stop_reason", resp.StopReason),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	text := resp.Text()
	if text == "" {
		return "", eris.New("oracle: empty response")
	}
	return text, nil
}
