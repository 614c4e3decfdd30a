package service

import (
	"caschools/internal/config"
	"caschools/internal/model"
	"caschools/internal/registry"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (s *stubCompleter) Complete(ctx context.Context, modelName, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testAIConfig() *config.AIConfig {
	return &config.AIConfig{
		APIKey:  "test-key",
		BaseURL: "http://localhost",
		Models:  config.GeminiModels{Intent: "intent-model", Narrative: "narrative-model"},
	}
}

func TestGeminiStrategy_ParsesReplyWithSurroundingProse(t *testing.T) {
	ai := &stubCompleter{reply: "Sure, here is the parsed query:\n```json\n" +
		`{"district_name": "oakland", "colors": ["red"], "indicators": ["chronic_absenteeism"], "student_groups": ["el"], "data_availability": "available", "explanation": "ok"}` +
		"\n```\nLet me know if you need anything else."}
	strat := NewGeminiIntentStrategy(testAIConfig(), ai, registry.Default())

	intent, err := strat.TryExtract(context.Background(), "absenteeism for english learners in oakland")
	require.NoError(t, err)
	require.NotNil(t, intent)

	assert.Equal(t, "oakland", intent.DistrictName)
	assert.Equal(t, []string{model.StatusRed}, intent.Colors)
	assert.Equal(t, []string{registry.ChronicAbsenteeism}, intent.Indicators)
	assert.Equal(t, []string{"EL"}, intent.StudentGroups)
	assert.True(t, intent.Available())
}

func TestGeminiStrategy_PromptEnumeratesVocabulary(t *testing.T) {
	ai := &stubCompleter{reply: `{"data_availability": "available"}`}
	reg := registry.Subset(registry.ChronicAbsenteeism, registry.MathPerformance)
	strat := NewGeminiIntentStrategy(testAIConfig(), ai, reg)

	_, err := strat.TryExtract(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, ai.prompts, 1)

	prompt := ai.prompts[0]
	assert.Contains(t, prompt, registry.ChronicAbsenteeism)
	assert.Contains(t, prompt, registry.MathPerformance)
	assert.NotContains(t, prompt, registry.SuspensionRate)
	assert.Contains(t, prompt, "SWD (Students with Disabilities)")
	assert.Contains(t, prompt, "not_available")
	assert.Contains(t, prompt, "anything")
}

func TestGeminiStrategy_UnknownIndicatorFlipsToNotAvailable(t *testing.T) {
	ai := &stubCompleter{reply: `{"indicators": ["teacher_retention"], "data_availability": "available"}`}
	strat := NewGeminiIntentStrategy(testAIConfig(), ai, registry.Default())

	intent, err := strat.TryExtract(context.Background(), "teacher retention rates")
	require.NoError(t, err)

	assert.False(t, intent.Available())
	assert.Contains(t, intent.Explanation, "Teacher Retention")
	assert.Empty(t, intent.Indicators)
}

func TestGeminiStrategy_NoJSONInReply(t *testing.T) {
	ai := &stubCompleter{reply: "I could not parse that query, sorry."}
	strat := NewGeminiIntentStrategy(testAIConfig(), ai, registry.Default())

	intent, err := strat.TryExtract(context.Background(), "whatever")
	assert.Error(t, err)
	assert.Nil(t, intent)
}

func TestGeminiStrategy_DisabledWithoutKey(t *testing.T) {
	cfg := testAIConfig()
	cfg.APIKey = ""
	ai := &stubCompleter{reply: `{}`}
	strat := NewGeminiIntentStrategy(cfg, ai, registry.Default())

	intent, err := strat.TryExtract(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Nil(t, intent)
	assert.Zero(t, ai.calls)
}

func TestIntentService_AIWinsWhenAvailable(t *testing.T) {
	ai := &stubCompleter{reply: `{"district_name": "fresno", "data_availability": "available", "explanation": "from ai"}`}
	svc := NewIntentService(
		NewGeminiIntentStrategy(testAIConfig(), ai, registry.Default()),
		NewPatternParser(registry.Default()),
	)

	intent := svc.Extract(context.Background(), "schools in sunnyvale")

	// The AI reading wins even where the pattern parser would disagree.
	assert.Equal(t, "fresno", intent.DistrictName)
	assert.Equal(t, "from ai", intent.Explanation)
}

func TestIntentService_FallsBackOnAIError(t *testing.T) {
	ai := &stubCompleter{err: errors.New("capability unavailable")}
	svc := NewIntentService(
		NewGeminiIntentStrategy(testAIConfig(), ai, registry.Default()),
		NewPatternParser(registry.Default()),
	)

	intent := svc.Extract(context.Background(), "Which schools in Sunnyvale have red math performance?")

	require.NotNil(t, intent)
	assert.Equal(t, "sunnyvale", intent.DistrictName)
	assert.Equal(t, []string{registry.MathPerformance}, intent.Indicators)
	assert.Equal(t, []string{model.StatusRed}, intent.Colors)
}

func TestIntentService_Idempotent(t *testing.T) {
	reply := `{"district_name": "oakland", "colors": ["Red"], "indicators": ["ela_performance"], "data_availability": "available"}`
	svc := NewIntentService(
		NewGeminiIntentStrategy(testAIConfig(), &stubCompleter{reply: reply}, registry.Default()),
		NewPatternParser(registry.Default()),
	)

	text := "red ELA schools in oakland"
	first := svc.Extract(context.Background(), text)
	second := svc.Extract(context.Background(), text)

	assert.Equal(t, first, second)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON(`prefix {"a": 1} suffix`))
	assert.Equal(t, `{"a": {"b": 2}}`, extractJSON(`{"a": {"b": 2}}`))
	assert.Equal(t, "", extractJSON("no json here"))
	assert.Equal(t, "", extractJSON("} backwards {"))
}
