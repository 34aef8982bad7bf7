package prescription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/drbusiness/platform/internal/consultation"
	"github.com/drbusiness/platform/internal/llm"
	"github.com/drbusiness/platform/internal/prompt"
)

const week1PostCount = 7

// visualPromptDenylist rejects prompts that instruct the image model to
// render text ("with the text ...", "a sign that says ..."). Prompts that
// merely forbid text ("no text anywhere in the image") are fine; the model
// echoes that phrasing often and it honors the contract rather than
// violating it.
var visualPromptDenylist = regexp.MustCompile(`(?i)(text (that says|saying|reading)|with the (word|words|text)|that (reads|says)|written (on|across)|spell(s|ing)? out)`)

// Generator runs the individual text-model operations and validates their
// payloads against the content contract.
type Generator struct {
	llm llm.TextGenerator
}

func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{llm: textGen}
}

// decodeStrict unmarshals with unknown fields rejected.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// GenerateStrategy produces the high-level strategy.
func (g *Generator) GenerateStrategy(ctx context.Context, d consultation.ConsultationData) (Strategy, error) {
	const op = "strategy"
	p, err := prompt.Strategy(d)
	if err != nil {
		return Strategy{}, err
	}
	raw, err := g.llm.GenerateJSON(ctx, prompt.Persona(), p, llm.StrategySchema)
	if err != nil {
		return Strategy{}, &GenerationFailure{Op: op, Err: err}
	}
	var s Strategy
	if err := decodeStrict(raw, &s); err != nil {
		return Strategy{}, &GenerationFormatError{Op: op, Err: err}
	}
	if s.Title == "" || s.Summary == "" {
		return Strategy{}, &GenerationFormatError{Op: op, Err: fmt.Errorf("missing title or summary")}
	}
	if len(s.Steps) < 3 || len(s.Steps) > 6 {
		return Strategy{}, &GenerationFormatError{Op: op, Err: fmt.Errorf("expected 3-6 steps, got %d", len(s.Steps))}
	}
	return s, nil
}

// GenerateWeek1 produces the detailed first-week plan: exactly 7 posts,
// every field populated, visual prompts English-only and text-free.
func (g *Generator) GenerateWeek1(ctx context.Context, d consultation.ConsultationData) ([]DetailedPost, error) {
	const op = "week1"
	p, err := prompt.Week1(d)
	if err != nil {
		return nil, err
	}
	raw, err := g.llm.GenerateJSON(ctx, prompt.Persona(), p, llm.DetailedPostListSchema)
	if err != nil {
		return nil, &GenerationFailure{Op: op, Err: err}
	}
	var posts []DetailedPost
	if err := decodeStrict(raw, &posts); err != nil {
		return nil, &GenerationFormatError{Op: op, Err: err}
	}
	if len(posts) != week1PostCount {
		return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("expected %d posts, got %d", week1PostCount, len(posts))}
	}
	if err := validatePosts(posts); err != nil {
		return nil, &GenerationFormatError{Op: op, Err: err}
	}
	seenDays := make(map[string]bool, week1PostCount)
	for _, post := range posts {
		if seenDays[post.Day] {
			return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("duplicate day %q", post.Day)}
		}
		seenDays[post.Day] = true
	}
	return posts, nil
}

// GenerateFutureWeeks produces the outline plans for weeks 2 through 4.
func (g *Generator) GenerateFutureWeeks(ctx context.Context, d consultation.ConsultationData) ([]FutureWeek, error) {
	const op = "futureWeeks"
	p, err := prompt.FutureWeeks(d)
	if err != nil {
		return nil, err
	}
	raw, err := g.llm.GenerateJSON(ctx, prompt.Persona(), p, llm.FutureWeekListSchema)
	if err != nil {
		return nil, &GenerationFailure{Op: op, Err: err}
	}
	var weeks []FutureWeek
	if err := decodeStrict(raw, &weeks); err != nil {
		return nil, &GenerationFormatError{Op: op, Err: err}
	}
	if len(weeks) != 3 {
		return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("expected 3 weeks, got %d", len(weeks))}
	}
	for _, w := range weeks {
		if w.Summary == "" {
			return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("week %d: empty summary", w.Week)}
		}
		if len(w.Posts) < 3 || len(w.Posts) > 7 {
			return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("week %d: expected 3-7 post ideas, got %d", w.Week, len(w.Posts))}
		}
		for _, sp := range w.Posts {
			if sp.Day == "" || sp.Platform == "" || sp.Idea == "" {
				return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("week %d: incomplete post idea", w.Week)}
			}
		}
	}
	return weeks, nil
}

// GenerateDetailedWeek expands a future week's simple ideas into full posts,
// one detailed post per idea.
func (g *Generator) GenerateDetailedWeek(ctx context.Context, d consultation.ConsultationData, ideas []SimplePost) ([]DetailedPost, error) {
	const op = "detailedWeek"
	if len(ideas) == 0 {
		return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("no post ideas supplied")}
	}
	lines := make([]string, len(ideas))
	for i, sp := range ideas {
		lines[i] = fmt.Sprintf("- %s on %s: %s", sp.Day, sp.Platform, sp.Idea)
	}
	p, err := prompt.DetailedWeek(d, lines)
	if err != nil {
		return nil, err
	}
	raw, err := g.llm.GenerateJSON(ctx, prompt.Persona(), p, llm.DetailedPostListSchema)
	if err != nil {
		return nil, &GenerationFailure{Op: op, Err: err}
	}
	var posts []DetailedPost
	if err := decodeStrict(raw, &posts); err != nil {
		return nil, &GenerationFormatError{Op: op, Err: err}
	}
	if len(posts) != len(ideas) {
		return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("expected %d posts, got %d", len(ideas), len(posts))}
	}
	if err := validatePosts(posts); err != nil {
		return nil, &GenerationFormatError{Op: op, Err: err}
	}
	return posts, nil
}

// GenerateCaptionVariations returns exactly 3 distinct alternative captions.
func (g *Generator) GenerateCaptionVariations(ctx context.Context, originalCaption, businessContext string) ([]string, error) {
	const op = "captionVariations"
	p := prompt.CaptionVariations(originalCaption, businessContext)
	raw, err := g.llm.GenerateJSON(ctx, prompt.Persona(), p, llm.CaptionVariationsSchema)
	if err != nil {
		return nil, &GenerationFailure{Op: op, Err: err}
	}
	var payload struct {
		Variations []string `json:"variations"`
	}
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, &GenerationFormatError{Op: op, Err: err}
	}
	if len(payload.Variations) != 3 {
		return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("expected 3 variations, got %d", len(payload.Variations))}
	}
	original := strings.TrimSpace(originalCaption)
	seen := make(map[string]bool, 3)
	for _, v := range payload.Variations {
		if strings.TrimSpace(v) == "" {
			return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("empty variation")}
		}
		if strings.TrimSpace(v) == original {
			return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("variation repeats the original caption")}
		}
		if seen[v] {
			return nil, &GenerationFormatError{Op: op, Err: fmt.Errorf("duplicate variation")}
		}
		seen[v] = true
	}
	return payload.Variations, nil
}

// ElaborateStrategyStep returns a markdown deep-dive on one strategy step.
func (g *Generator) ElaborateStrategyStep(ctx context.Context, businessContext, step string) (string, error) {
	const op = "elaborateStep"
	text, err := g.llm.GenerateText(ctx, prompt.Persona(), prompt.ElaborateStep(businessContext, step))
	if err != nil {
		return "", &GenerationFailure{Op: op, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &GenerationFormatError{Op: op, Err: fmt.Errorf("empty elaboration")}
	}
	return text, nil
}

// GenerateAnalytics returns mock dashboard numbers for the business.
func (g *Generator) GenerateAnalytics(ctx context.Context, businessContext string) (AnalyticsSnapshot, error) {
	const op = "analytics"
	raw, err := g.llm.GenerateJSON(ctx, prompt.AnalyticsPersona(), prompt.Analytics(businessContext), llm.AnalyticsSchema)
	if err != nil {
		return AnalyticsSnapshot{}, &GenerationFailure{Op: op, Err: err}
	}
	var snap AnalyticsSnapshot
	if err := decodeStrict(raw, &snap); err != nil {
		return AnalyticsSnapshot{}, &GenerationFormatError{Op: op, Err: err}
	}
	if len(snap.WeeklyPerformance) != 7 {
		return AnalyticsSnapshot{}, &GenerationFormatError{Op: op, Err: fmt.Errorf("expected 7 weekly values, got %d", len(snap.WeeklyPerformance))}
	}
	for _, v := range snap.WeeklyPerformance {
		if v < 0 || v > 100 {
			return AnalyticsSnapshot{}, &GenerationFormatError{Op: op, Err: fmt.Errorf("weekly value %v out of range", v)}
		}
	}
	return snap, nil
}

// EnhanceVisualPrompt rewrites a user visual prompt for the image model.
func (g *Generator) EnhanceVisualPrompt(ctx context.Context, p string) (string, error) {
	const op = "enhancePrompt"
	text, err := g.llm.GenerateText(ctx, prompt.Persona(), prompt.EnhanceVisual(p))
	if err != nil {
		return "", &GenerationFailure{Op: op, Err: err}
	}
	return strings.TrimSpace(text), nil
}

// TrendingTopics returns the current Egyptian marketing trends as markdown.
func (g *Generator) TrendingTopics(ctx context.Context) (string, error) {
	const op = "trendingTopics"
	text, err := g.llm.GenerateText(ctx, prompt.Persona(), prompt.TrendingTopics())
	if err != nil {
		return "", &GenerationFailure{Op: op, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &GenerationFormatError{Op: op, Err: fmt.Errorf("empty report")}
	}
	return text, nil
}

func validatePosts(posts []DetailedPost) error {
	for i, p := range posts {
		switch {
		case p.Day == "", p.Platform == "", p.PostType == "":
			return fmt.Errorf("post %d: missing day, platform or postType", i)
		case strings.TrimSpace(p.Caption) == "":
			return fmt.Errorf("post %d: empty caption", i)
		case strings.TrimSpace(p.Hashtags) == "":
			return fmt.Errorf("post %d: empty hashtags", i)
		case strings.TrimSpace(p.VisualPrompt) == "":
			return fmt.Errorf("post %d: empty visual prompt", i)
		}
		if err := checkVisualPrompt(p.VisualPrompt); err != nil {
			return fmt.Errorf("post %d: %w", i, err)
		}
	}
	return nil
}

// checkVisualPrompt enforces English-only, text-free visual prompts.
func checkVisualPrompt(p string) error {
	for _, r := range p {
		if unicode.Is(unicode.Arabic, r) {
			return fmt.Errorf("visual prompt contains Arabic characters")
		}
	}
	if m := visualPromptDenylist.FindString(p); m != "" {
		return fmt.Errorf("visual prompt requests rendered text (%q)", m)
	}
	return nil
}
