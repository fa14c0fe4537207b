package advisor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-intel/internal/climate"
	"github.com/sells-group/climate-intel/internal/model"
	"github.com/sells-group/climate-intel/internal/store"
	"github.com/sells-group/climate-intel/pkg/oracle"
)

type fakeAsker struct {
	response   string
	err        error
	lastSystem string
	lastMsgs   []oracle.Message
}

func (f *fakeAsker) Ask(_ context.Context, system string, messages []oracle.Message) (string, error) {
	f.lastSystem = system
	f.lastMsgs = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestAdvisor(t *testing.T, asker Asker) (*Advisor, store.Store, string) {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	user := &model.User{
		ID:                uuid.New().String(),
		Email:             "user@example.com",
		Name:              "Asha",
		PasswordHash:      "hash",
		PreferredLanguage: "en",
		CreatedAt:         time.Now().UTC(),
	}
	require.NoError(t, st.CreateUser(context.Background(), user))

	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	return New(asker, st, clock), st, user.ID
}

func TestChat(t *testing.T) {
	asker := &fakeAsker{response: "Expect a dry spell; mulch your fields."}
	adv, st, userID := newTestAdvisor(t, asker)

	reply, err := adv.Chat(context.Background(), userID, "will it rain this week?", "en")
	require.NoError(t, err)

	assert.Equal(t, "Expect a dry spell; mulch your fields.", reply.Response)
	assert.Equal(t, 92.5, reply.Confidence)
	assert.Equal(t, []string{"Based on current global climate models", "Regional data from past 30 days"}, reply.Assumptions)
	assert.Equal(t, []string{"IPCC Climate Report 2023", "Regional Weather Bureau Data"}, reply.References)

	assert.Contains(t, asker.lastSystem, "climate intelligence AI assistant")
	assert.NotContains(t, asker.lastSystem, "Respond in Tamil language.")
	require.Len(t, asker.lastMsgs, 1)
	assert.Equal(t, "will it rain this week?", asker.lastMsgs[0].Content)

	// The exchange is persisted.
	records, err := st.ListChatHistory(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "will it rain this week?", records[0].Message)
	assert.Equal(t, "Expect a dry spell; mulch your fields.", records[0].Response)
	assert.Equal(t, "en", records[0].Language)
}

func TestChat_TamilAddendum(t *testing.T) {
	asker := &fakeAsker{response: "answer"}
	adv, _, userID := newTestAdvisor(t, asker)

	_, err := adv.Chat(context.Background(), userID, "question", "ta")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(asker.lastSystem, "Respond in Tamil language."))
}

func TestChat_OracleError(t *testing.T) {
	asker := &fakeAsker{err: eris.New("model unavailable")}
	adv, st, userID := newTestAdvisor(t, asker)

	_, err := adv.Chat(context.Background(), userID, "question", "en")
	assert.Error(t, err)

	records, err := st.ListChatHistory(context.Background(), userID, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistory(t *testing.T) {
	asker := &fakeAsker{response: "answer"}
	adv, _, userID := newTestAdvisor(t, asker)

	for range 3 {
		_, err := adv.Chat(context.Background(), userID, "question", "en")
		require.NoError(t, err)
	}

	records, err := adv.History(context.Background(), userID, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// limit <= 0 means the default window.
	records, err = adv.History(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecommend(t *testing.T) {
	asker := &fakeAsker{response: `{"water_management": ["use drip irrigation"]}`}
	adv, _, _ := newTestAdvisor(t, asker)

	risk := climate.RiskAssessment{DroughtRisk: 61.2, FloodRisk: 12.0, HeatStress: 44.9}
	result := adv.Recommend(context.Background(), 11.0, 77.0, risk, "en")

	assert.Equal(t, asker.response, result.Recommendations)
	assert.False(t, result.IsFallback)
	assert.Equal(t, climate.Coordinate{Lat: 11.0, Lon: 77.0}, result.Location)
	assert.Equal(t, "2024-06-15T12:00:00Z", result.GeneratedAt)

	assert.Contains(t, asker.lastSystem, "sustainability advisor")
	require.Len(t, asker.lastMsgs, 1)
	assert.Contains(t, asker.lastMsgs[0].Content, "Drought Risk: 61.2%")
	assert.Contains(t, asker.lastMsgs[0].Content, "Location: 11, 77")
}

func TestRecommend_FallbackOnOracleFailure(t *testing.T) {
	asker := &fakeAsker{err: eris.New("model unavailable")}
	adv, _, _ := newTestAdvisor(t, asker)

	result := adv.Recommend(context.Background(), 11.0, 77.0, climate.RiskAssessment{}, "en")

	assert.True(t, result.IsFallback)
	sets, ok := result.Recommendations.(FallbackSets)
	require.True(t, ok)
	assert.Len(t, sets.WaterManagement, 3)
	assert.Len(t, sets.CropSuggestions, 3)
	assert.Len(t, sets.DisasterPrep, 3)
	assert.Len(t, sets.CarbonTips, 3)
	assert.Contains(t, sets.WaterManagement, "Install rainwater harvesting")
}

func TestRecommend_TamilAddendum(t *testing.T) {
	asker := &fakeAsker{response: "answer"}
	adv, _, _ := newTestAdvisor(t, asker)

	adv.Recommend(context.Background(), 0, 0, climate.RiskAssessment{}, "ta")
	assert.True(t, strings.HasSuffix(asker.lastSystem, "Provide recommendations in Tamil language."))
}

func TestValidateLanguage(t *testing.T) {
	assert.NoError(t, ValidateLanguage("en"))
	assert.NoError(t, ValidateLanguage("ta"))
	assert.Error(t, ValidateLanguage("fr"))
	assert.Error(t, ValidateLanguage("en-US"))
	assert.Error(t, ValidateLanguage(""))
	assert.Error(t, ValidateLanguage("not a tag"))
}

func TestSetLanguage(t *testing.T) {
	asker := &fakeAsker{}
	adv, st, userID := newTestAdvisor(t, asker)

	require.NoError(t, adv.SetLanguage(context.Background(), userID, "ta"))
	user, err := st.GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "ta", user.PreferredLanguage)

	assert.Error(t, adv.SetLanguage(context.Background(), userID, "de"))
	assert.ErrorIs(t, adv.SetLanguage(context.Background(), "missing", "en"), store.ErrNotFound)
}
