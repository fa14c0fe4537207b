// Package advisor turns model output into climate guidance: the chat
// assistant, sustainability recommendations, and language preferences.
package advisor

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/climate-intel/internal/model"
	"github.com/sells-group/climate-intel/internal/store"
	"github.com/sells-group/climate-intel/pkg/oracle"
)

// Asker is the slice of the oracle the advisor needs.
type Asker interface {
	Ask(ctx context.Context, system string, messages []oracle.Message) (string, error)
}

// Advisor answers climate questions and produces recommendations, persisting
// chat exchanges as it goes.
type Advisor struct {
	oracle Asker
	store  store.Store
	clock  clockwork.Clock
}

// New builds an Advisor.
func New(asker Asker, st store.Store, clock clockwork.Clock) *Advisor {
	return &Advisor{oracle: asker, store: st, clock: clock}
}

const chatSystemPrompt = `You are a climate intelligence AI assistant for an environmental platform.
You help users understand climate risks, sustainability trends, and environmental data.
Provide actionable advice on water management, crop selection, and disaster preparedness.
Be concise but informative. Always explain your reasoning.
If the user asks in Tamil, respond in Tamil.`

const tamilChatAddendum = "\n\nRespond in Tamil language."

// ChatReply is the assistant's answer with its fixed provenance metadata.
type ChatReply struct {
	Response    string   `json:"response"`
	Confidence  float64  `json:"confidence"`
	Assumptions []string `json:"assumptions"`
	References  []string `json:"references"`
}

// Chat sends the user's message to the oracle and records the exchange.
func (a *Advisor) Chat(ctx context.Context, userID, message, lang string) (*ChatReply, error) {
	system := chatSystemPrompt
	if lang == "ta" {
		system += tamilChatAddendum
	}

	response, err := a.oracle.Ask(ctx, system, []oracle.Message{
		{Role: "user", Content: message},
	})
	if err != nil {
		return nil, eris.Wrap(err, "advisor: chat")
	}

	rec := &model.ChatRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Response:  response,
		Language:  lang,
		Timestamp: a.clock.Now().UTC(),
	}
	if err := a.store.InsertChat(ctx, rec); err != nil {
		return nil, eris.Wrap(err, "advisor: persist chat")
	}

	zap.L().Info("chat answered",
		zap.String("user_id", userID),
		zap.String("language", lang),
	)

	return &ChatReply{
		Response:    response,
		Confidence:  92.5,
		Assumptions: []string{"Based on current global climate models", "Regional data from past 30 days"},
		References:  []string{"IPCC Climate Report 2023", "Regional Weather Bureau Data"},
	}, nil
}

// History returns the user's most recent chat exchanges.
func (a *Advisor) History(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	records, err := a.store.ListChatHistory(ctx, userID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "advisor: chat history")
	}
	return records, nil
}
