package oracle

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-intel/internal/config"
	"github.com/sells-group/climate-intel/internal/resilience"
)

// MockClient is a testify mock of Client.
type MockClient struct {
	mock.Mock
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*MessageResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func testConfig() config.AnthropicConfig {
	return config.AnthropicConfig{
		Model:          "claude-sonnet-4-5-20250929",
		MaxTokens:      1024,
		RequestsPerSec: 1000, // don't throttle tests
	}
}

func textResponse(text string) *MessageResponse {
	return &MessageResponse{
		ID:         "msg_1",
		Model:      "claude-sonnet-4-5-20250929",
		Content:    []ContentBlock{{Type: "text", Text: text}},
		StopReason: "end_turn",
	}
}

func TestAsk(t *testing.T) {
	mc := new(MockClient)
	mc.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req MessageRequest) bool {
		return req.System == "you are helpful" &&
			len(req.Messages) == 1 &&
			req.Messages[0].Content == "will it rain?" &&
			req.MaxTokens == 1024
	})).Return(textResponse("unlikely this week"), nil)

	o := NewWithClient(mc, testConfig())
	got, err := o.Ask(context.Background(), "you are helpful", []Message{
		{Role: "user", Content: "will it rain?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "unlikely this week", got)
	mc.AssertExpectations(t)
}

func TestAsk_RetriesTransient(t *testing.T) {
	mc := new(MockClient)
	mc.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, resilience.Transient(eris.New("overloaded"), 529)).Once()
	mc.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("recovered"), nil).Once()

	o := NewWithClient(mc, testConfig())
	o.retry = resilience.Policy{Attempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	got, err := o.Ask(context.Background(), "", []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	mc.AssertExpectations(t)
}

func TestAsk_PermanentErrorNotRetried(t *testing.T) {
	mc := new(MockClient)
	mc.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, eris.New("invalid request")).Once()

	o := NewWithClient(mc, testConfig())
	_, err := o.Ask(context.Background(), "", []Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
	mc.AssertExpectations(t)
}

func TestAsk_EmptyResponse(t *testing.T) {
	mc := new(MockClient)
	mc.On("CreateMessage", mock.Anything, mock.Anything).
		Return(&MessageResponse{Content: []ContentBlock{{Type: "thinking", Text: "hmm"}}}, nil)

	o := NewWithClient(mc, testConfig())
	_, err := o.Ask(context.Background(), "", []Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestResponseText_JoinsBlocks(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		{Type: "text", Text: "part one "},
		{Type: "tool_use", Text: "ignored"},
		{Type: "text", Text: "part two"},
	}}
	assert.Equal(t, "part one part two", resp.Text())
}
