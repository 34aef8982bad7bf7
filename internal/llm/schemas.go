package llm

import "github.com/google/generative-ai-go/genai"

// Response schemas for every schema-constrained generation. Field names here
// are the wire contract; the typed structs in internal/prescription mirror them.

var detailedPostSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"day":          {Type: genai.TypeString},
		"platform":     {Type: genai.TypeString},
		"postType":     {Type: genai.TypeString},
		"caption":      {Type: genai.TypeString},
		"hashtags":     {Type: genai.TypeString},
		"visualPrompt": {Type: genai.TypeString},
	},
	Required: []string{"day", "platform", "postType", "caption", "hashtags", "visualPrompt"},
}

// StrategySchema constrains the high-level strategy response.
var StrategySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":   {Type: genai.TypeString},
		"summary": {Type: genai.TypeString},
		"steps":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title", "summary", "steps"},
}

// DetailedPostListSchema constrains week-1 and detailed-week responses.
var DetailedPostListSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: detailedPostSchema,
}

// FutureWeekListSchema constrains the weeks 2-4 outline response.
var FutureWeekListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"week":    {Type: genai.TypeInteger},
			"summary": {Type: genai.TypeString},
			"posts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":      {Type: genai.TypeString},
						"platform": {Type: genai.TypeString},
						"idea":     {Type: genai.TypeString},
					},
					Required: []string{"day", "platform", "idea"},
				},
			},
		},
		Required: []string{"week", "summary", "posts"},
	},
}

// CaptionVariationsSchema constrains the alternative-captions response.
var CaptionVariationsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"variations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"variations"},
}

var statSchema = func(valueType genai.Type) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"value": {Type: valueType},
			"trend": {Type: genai.TypeNumber},
		},
		Required: []string{"value", "trend"},
	}
}

// AnalyticsSchema constrains the mock dashboard analytics response.
var AnalyticsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"followerGrowth":    statSchema(genai.TypeInteger),
		"engagementRate":    statSchema(genai.TypeNumber),
		"reach":             statSchema(genai.TypeInteger),
		"weeklyPerformance": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeNumber}},
	},
	Required: []string{"followerGrowth", "engagementRate", "reach", "weeklyPerformance"},
}
