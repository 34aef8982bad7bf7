package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailedPostListSchema(t *testing.T) {
	require.Equal(t, genai.TypeArray, DetailedPostListSchema.Type)
	item := DetailedPostListSchema.Items
	require.NotNil(t, item)
	assert.ElementsMatch(t,
		[]string{"day", "platform", "postType", "caption", "hashtags", "visualPrompt"},
		item.Required)
}

func TestFutureWeekListSchema(t *testing.T) {
	require.Equal(t, genai.TypeArray, FutureWeekListSchema.Type)
	week := FutureWeekListSchema.Items
	require.NotNil(t, week)
	assert.ElementsMatch(t, []string{"week", "summary", "posts"}, week.Required)
	post := week.Properties["posts"].Items
	require.NotNil(t, post)
	assert.ElementsMatch(t, []string{"day", "platform", "idea"}, post.Required)
}

func TestAnalyticsSchema(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"followerGrowth", "engagementRate", "reach", "weeklyPerformance"},
		AnalyticsSchema.Required)
	growth := AnalyticsSchema.Properties["followerGrowth"]
	require.NotNil(t, growth)
	assert.Equal(t, genai.TypeInteger, growth.Properties["value"].Type)
}
