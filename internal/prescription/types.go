// Package prescription generates and assembles the full marketing
// prescription: strategy, detailed first week with images, and outline plans
// for the following weeks.
package prescription

// Strategy is the high-level viral marketing strategy, all Arabic.
type Strategy struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Steps   []string `json:"steps"`
}

// SimplePost is a lightweight post idea inside a future week.
type SimplePost struct {
	Day      string `json:"day"`
	Platform string `json:"platform"`
	Idea     string `json:"idea"`
}

// DetailedPost is a fully specified post: Arabic caption and hashtags,
// English visual prompt, and the hosted image URL once synthesis succeeded.
type DetailedPost struct {
	Day            string `json:"day"`
	Platform       string `json:"platform"`
	PostType       string `json:"postType"`
	Caption        string `json:"caption"`
	Hashtags       string `json:"hashtags"`
	VisualPrompt   string `json:"visualPrompt"`
	GeneratedImage string `json:"generatedImage,omitempty"`
}

// FutureWeek is the outline plan for one of weeks 2 through 4.
type FutureWeek struct {
	Week    int          `json:"week"`
	Summary string       `json:"summary"`
	Posts   []SimplePost `json:"posts"`
}

// Prescription is the complete deliverable for a client. DetailedPlans holds
// future weeks that were later expanded into full posts, keyed by week number.
type Prescription struct {
	Strategy        Strategy               `json:"strategy"`
	Week1Plan       []DetailedPost         `json:"week1Plan"`
	FutureWeeksPlan []FutureWeek           `json:"futureWeeksPlan"`
	DetailedPlans   map[int][]DetailedPost `json:"detailedPlans,omitempty"`
}

// Stat is a dashboard metric with its period-over-period trend percentage.
type Stat struct {
	Value float64 `json:"value"`
	Trend float64 `json:"trend"`
}

// AnalyticsSnapshot is the mock analytics payload for the client dashboard.
type AnalyticsSnapshot struct {
	FollowerGrowth    Stat      `json:"followerGrowth"`
	EngagementRate    Stat      `json:"engagementRate"`
	Reach             Stat      `json:"reach"`
	WeeklyPerformance []float64 `json:"weeklyPerformance"`
}
