package prescription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drbusiness/platform/internal/consultation"
)

// stubLLM lets tests script the model's JSON and text responses.
type stubLLM struct {
	jsonFn func(system, prompt string, schema *genai.Schema) ([]byte, error)
	textFn func(system, prompt string) (string, error)
}

func (s *stubLLM) GenerateJSON(_ context.Context, system, prompt string, schema *genai.Schema) ([]byte, error) {
	return s.jsonFn(system, prompt, schema)
}

func (s *stubLLM) GenerateText(_ context.Context, system, prompt string) (string, error) {
	return s.textFn(system, prompt)
}

func fixedJSON(payload string) *stubLLM {
	return &stubLLM{
		jsonFn: func(_, _ string, _ *genai.Schema) ([]byte, error) { return []byte(payload), nil },
	}
}

func testConsultation() consultation.ConsultationData {
	return consultation.ConsultationData{
		Business: consultation.BusinessData{
			Name:        "Lotus Bakery",
			Field:       "artisan bakery",
			Description: "Sourdough and pastries in Heliopolis",
		},
		Goals:    consultation.MarketingGoals{Awareness: true},
		Audience: consultation.TargetAudience{Description: "Families in Heliopolis"},
	}
}

func validPost(day string) DetailedPost {
	return DetailedPost{
		Day:          day,
		Platform:     "Instagram",
		PostType:     "Reel",
		Caption:      "ريحة الخبز الطازة وصلت لحد عندك",
		Hashtags:     "#مخبز #هليوبوليس",
		VisualPrompt: "Warm close-up of a golden sourdough loaf on a rustic wooden table, morning light",
	}
}

func weekJSON(t *testing.T, n int) string {
	t.Helper()
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	posts := make([]DetailedPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, validPost(days[i%len(days)]))
	}
	b, err := json.Marshal(posts)
	require.NoError(t, err)
	return string(b)
}

func TestGenerateWeek1(t *testing.T) {
	g := NewGenerator(fixedJSON(weekJSON(t, 7)))
	posts, err := g.GenerateWeek1(context.Background(), testConsultation())
	require.NoError(t, err)
	assert.Len(t, posts, 7)
	assert.Equal(t, "Sunday", posts[0].Day)
	assert.Empty(t, posts[0].GeneratedImage)
}

func TestGenerateWeek1WrongCount(t *testing.T) {
	for _, n := range []int{5, 8} {
		g := NewGenerator(fixedJSON(weekJSON(t, n)))
		_, err := g.GenerateWeek1(context.Background(), testConsultation())
		var ferr *GenerationFormatError
		require.ErrorAs(t, err, &ferr, "count %d", n)
	}
}

func TestGenerateWeek1TextBearingVisualPrompt(t *testing.T) {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	posts := make([]DetailedPost, 7)
	for i := range posts {
		posts[i] = validPost(days[i])
	}
	posts[3].VisualPrompt = `A bakery storefront with the text "Fresh Daily" written on the window`
	b, err := json.Marshal(posts)
	require.NoError(t, err)

	g := NewGenerator(fixedJSON(string(b)))
	_, err = g.GenerateWeek1(context.Background(), testConsultation())
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, err.Error(), "rendered text")
}

func TestGenerateWeek1AcceptsTextForbiddingVisualPrompts(t *testing.T) {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	posts := make([]DetailedPost, 7)
	for i := range posts {
		posts[i] = validPost(days[i])
	}
	// Prompts that forbid text honor the contract and must not be rejected.
	posts[0].VisualPrompt = "Minimalist flat-lay of croissants on marble, soft light, no text anywhere in the image"
	posts[1].VisualPrompt = "Cozy bakery interior at dawn, without any words or lettering"
	posts[2].VisualPrompt = "Macro shot of a cinnamon roll, avoid text overlays"
	b, err := json.Marshal(posts)
	require.NoError(t, err)

	g := NewGenerator(fixedJSON(string(b)))
	got, err := g.GenerateWeek1(context.Background(), testConsultation())
	require.NoError(t, err)
	assert.Len(t, got, 7)
}

func TestGenerateWeek1DuplicateDay(t *testing.T) {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Sunday"}
	posts := make([]DetailedPost, 7)
	for i := range posts {
		posts[i] = validPost(days[i])
	}
	b, err := json.Marshal(posts)
	require.NoError(t, err)

	g := NewGenerator(fixedJSON(string(b)))
	_, err = g.GenerateWeek1(context.Background(), testConsultation())
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, err.Error(), "duplicate day")
}

func TestGenerateWeek1ArabicVisualPrompt(t *testing.T) {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	posts := make([]DetailedPost, 7)
	for i := range posts {
		posts[i] = validPost(days[i])
	}
	posts[0].VisualPrompt = "صورة رغيف خبز"
	b, err := json.Marshal(posts)
	require.NoError(t, err)

	g := NewGenerator(fixedJSON(string(b)))
	_, err = g.GenerateWeek1(context.Background(), testConsultation())
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, err.Error(), "Arabic")
}

func TestGenerateWeek1ModelError(t *testing.T) {
	g := NewGenerator(&stubLLM{
		jsonFn: func(_, _ string, _ *genai.Schema) ([]byte, error) {
			return nil, errors.New("quota exceeded")
		},
	})
	_, err := g.GenerateWeek1(context.Background(), testConsultation())
	var gerr *GenerationFailure
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "week1", gerr.Op)
}

func TestGenerateWeek1InvalidConsultation(t *testing.T) {
	bad := testConsultation()
	bad.Audience.Description = ""
	g := NewGenerator(fixedJSON(weekJSON(t, 7)))
	_, err := g.GenerateWeek1(context.Background(), bad)
	var verr *consultation.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGenerateStrategy(t *testing.T) {
	g := NewGenerator(fixedJSON(`{
		"title": "خطة الانتشار",
		"summary": "هنركز على المحتوى القصير",
		"steps": ["ريلز يومية", "تعاون مع مؤثرين", "عروض نهاية الأسبوع"]
	}`))
	s, err := g.GenerateStrategy(context.Background(), testConsultation())
	require.NoError(t, err)
	assert.Equal(t, "خطة الانتشار", s.Title)
	assert.Len(t, s.Steps, 3)
}

func TestGenerateStrategyTooFewSteps(t *testing.T) {
	g := NewGenerator(fixedJSON(`{"title":"x","summary":"y","steps":["one"]}`))
	_, err := g.GenerateStrategy(context.Background(), testConsultation())
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
}

func TestGenerateStrategyUnknownField(t *testing.T) {
	g := NewGenerator(fixedJSON(`{"title":"x","summary":"y","steps":["a","b","c"],"extra":1}`))
	_, err := g.GenerateStrategy(context.Background(), testConsultation())
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
}

func futureWeeksJSON() string {
	return `[
		{"week":2,"summary":"أسبوع التفاعل","posts":[
			{"day":"Sunday","platform":"Instagram","idea":"سؤال للجمهور"},
			{"day":"Tuesday","platform":"TikTok","idea":"خلف الكواليس"},
			{"day":"Thursday","platform":"Facebook","idea":"قصة عميل"}]},
		{"week":3,"summary":"أسبوع العروض","posts":[
			{"day":"Monday","platform":"Instagram","idea":"خصم خاص"},
			{"day":"Wednesday","platform":"Facebook","idea":"مسابقة"},
			{"day":"Saturday","platform":"TikTok","idea":"تحدي"}]},
		{"week":4,"summary":"أسبوع الولاء","posts":[
			{"day":"Sunday","platform":"Instagram","idea":"شكر للمتابعين"},
			{"day":"Tuesday","platform":"Facebook","idea":"لقطات من المحل"},
			{"day":"Friday","platform":"TikTok","idea":"وصفة سريعة"}]}
	]`
}

func TestGenerateFutureWeeks(t *testing.T) {
	g := NewGenerator(fixedJSON(futureWeeksJSON()))
	weeks, err := g.GenerateFutureWeeks(context.Background(), testConsultation())
	require.NoError(t, err)
	require.Len(t, weeks, 3)
	assert.Equal(t, 2, weeks[0].Week)
	assert.Len(t, weeks[0].Posts, 3)
}

func TestGenerateFutureWeeksWrongWeekCount(t *testing.T) {
	g := NewGenerator(fixedJSON(`[{"week":2,"summary":"s","posts":[
		{"day":"Sunday","platform":"Instagram","idea":"a"},
		{"day":"Monday","platform":"Facebook","idea":"b"},
		{"day":"Tuesday","platform":"TikTok","idea":"c"}]}]`))
	_, err := g.GenerateFutureWeeks(context.Background(), testConsultation())
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
}

func TestGenerateDetailedWeek(t *testing.T) {
	ideas := []SimplePost{
		{Day: "Sunday", Platform: "Instagram", Idea: "سؤال للجمهور"},
		{Day: "Tuesday", Platform: "TikTok", Idea: "خلف الكواليس"},
		{Day: "Thursday", Platform: "Facebook", Idea: "قصة عميل"},
	}

	var capturedPrompt string
	g := NewGenerator(&stubLLM{
		jsonFn: func(_, prompt string, _ *genai.Schema) ([]byte, error) {
			capturedPrompt = prompt
			return []byte(weekJSON(t, 3)), nil
		},
	})

	posts, err := g.GenerateDetailedWeek(context.Background(), testConsultation(), ideas)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Contains(t, capturedPrompt, "- Sunday on Instagram: سؤال للجمهور")
}

func TestGenerateDetailedWeekCountMismatch(t *testing.T) {
	ideas := []SimplePost{{Day: "Sunday", Platform: "Instagram", Idea: "فكرة"}}
	g := NewGenerator(fixedJSON(weekJSON(t, 3)))
	_, err := g.GenerateDetailedWeek(context.Background(), testConsultation(), ideas)
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
}

func TestGenerateCaptionVariations(t *testing.T) {
	g := NewGenerator(fixedJSON(`{"variations":["نسخة أولى","نسخة ثانية","نسخة ثالثة"]}`))
	vars, err := g.GenerateCaptionVariations(context.Background(), "الأصل", "Lotus Bakery")
	require.NoError(t, err)
	assert.Len(t, vars, 3)
}

func TestGenerateCaptionVariationsRejectsDuplicates(t *testing.T) {
	g := NewGenerator(fixedJSON(`{"variations":["نفس النص","نفس النص","نسخة"]}`))
	_, err := g.GenerateCaptionVariations(context.Background(), "الأصل", "ctx")
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
}

func TestGenerateCaptionVariationsRejectsOriginal(t *testing.T) {
	g := NewGenerator(fixedJSON(`{"variations":["نسخة أولى","الأصل","نسخة ثالثة"]}`))
	_, err := g.GenerateCaptionVariations(context.Background(), "الأصل", "ctx")
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, err.Error(), "original caption")
}

func TestGenerateAnalytics(t *testing.T) {
	g := NewGenerator(fixedJSON(`{
		"followerGrowth":{"value":1250,"trend":12.5},
		"engagementRate":{"value":4.2,"trend":-0.8},
		"reach":{"value":48000,"trend":22.1},
		"weeklyPerformance":[40,55,62,48,71,85,90]
	}`))
	snap, err := g.GenerateAnalytics(context.Background(), "Lotus Bakery")
	require.NoError(t, err)
	assert.Equal(t, 1250.0, snap.FollowerGrowth.Value)
	assert.Len(t, snap.WeeklyPerformance, 7)
}

func TestGenerateAnalyticsWrongWeekLength(t *testing.T) {
	g := NewGenerator(fixedJSON(`{
		"followerGrowth":{"value":1,"trend":1},
		"engagementRate":{"value":1,"trend":1},
		"reach":{"value":1,"trend":1},
		"weeklyPerformance":[40,55,62]
	}`))
	_, err := g.GenerateAnalytics(context.Background(), "ctx")
	var ferr *GenerationFormatError
	require.ErrorAs(t, err, &ferr)
}

func TestTextOperations(t *testing.T) {
	g := NewGenerator(&stubLLM{
		textFn: func(_, prompt string) (string, error) {
			return fmt.Sprintf("### رد\n%s", prompt[:10]), nil
		},
	})

	out, err := g.ElaborateStrategyStep(context.Background(), "ctx", "ركز على الريلز")
	require.NoError(t, err)
	assert.Contains(t, out, "###")

	topics, err := g.TrendingTopics(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, topics)

	enhanced, err := g.EnhanceVisualPrompt(context.Background(), "a bakery")
	require.NoError(t, err)
	assert.NotEmpty(t, enhanced)
}

func TestTextOperationFailure(t *testing.T) {
	g := NewGenerator(&stubLLM{
		textFn: func(_, _ string) (string, error) { return "", errors.New("timeout") },
	})
	_, err := g.TrendingTopics(context.Background())
	var gerr *GenerationFailure
	require.ErrorAs(t, err, &gerr)
}
