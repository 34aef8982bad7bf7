package consultation

import (
	"fmt"
	"strings"
)

// BusinessData describes the business collected by the intake flow.
// LogoImage is a base64 data URL (or raw base64) of the uploaded logo and may be empty.
type BusinessData struct {
	Name        string `json:"name"`
	Field       string `json:"field"`
	Description string `json:"description"`
	LogoImage   string `json:"logoImage,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
}

// MarketingGoals are the goal flags picked during intake plus an optional free-text goal.
type MarketingGoals struct {
	Awareness  bool   `json:"awareness"`
	Sales      bool   `json:"sales"`
	Leads      bool   `json:"leads"`
	Engagement bool   `json:"engagement"`
	Other      string `json:"other,omitempty"`
}

type TargetAudience struct {
	Description string `json:"description"`
}

// ConsultationData is the immutable intake record consumed by the generation pipeline.
type ConsultationData struct {
	Business BusinessData   `json:"business"`
	Goals    MarketingGoals `json:"goals"`
	Audience TargetAudience `json:"audience"`
}

// ValidationError reports the first missing required field, using its JSON path.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Validate checks the fields the prompts cannot do without.
// Logo, website and location are optional.
func (d ConsultationData) Validate() error {
	switch {
	case strings.TrimSpace(d.Business.Name) == "":
		return &ValidationError{Field: "business.name"}
	case strings.TrimSpace(d.Business.Field) == "":
		return &ValidationError{Field: "business.field"}
	case strings.TrimSpace(d.Business.Description) == "":
		return &ValidationError{Field: "business.description"}
	case strings.TrimSpace(d.Audience.Description) == "":
		return &ValidationError{Field: "audience.description"}
	}
	return nil
}

// Selected returns the names of the enabled goal flags plus the free-text goal, if any.
func (g MarketingGoals) Selected() []string {
	var goals []string
	if g.Awareness {
		goals = append(goals, "awareness")
	}
	if g.Sales {
		goals = append(goals, "sales")
	}
	if g.Leads {
		goals = append(goals, "leads")
	}
	if g.Engagement {
		goals = append(goals, "engagement")
	}
	if other := strings.TrimSpace(g.Other); other != "" {
		goals = append(goals, other)
	}
	return goals
}

// BusinessContext renders the profile block shared by every generation prompt.
func (d ConsultationData) BusinessContext() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Business Name: %s\n", d.Business.Name)
	fmt.Fprintf(&b, "- Field: %s\n", d.Business.Field)
	fmt.Fprintf(&b, "- Description: %s\n", d.Business.Description)
	if d.Business.Location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", d.Business.Location)
	}
	if d.Business.Website != "" {
		fmt.Fprintf(&b, "- Website: %s\n", d.Business.Website)
	}
	fmt.Fprintf(&b, "- Target Audience: %s\n", d.Audience.Description)
	fmt.Fprintf(&b, "- Goals: %s", strings.Join(d.Goals.Selected(), ", "))
	return b.String()
}

// ShortContext is the one-line business summary used by the lighter prompts
// (caption variations, step elaboration, analytics).
func (d ConsultationData) ShortContext() string {
	parts := []string{d.Business.Name, d.Business.Field}
	if d.Business.Location != "" {
		parts = append(parts, d.Business.Location)
	}
	return strings.Join(parts, ", ")
}
