// Package prompt builds the instruction text sent to the text model. Every
// builder is a pure function of the consultation record so the same intake
// always produces the same prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/drbusiness/platform/internal/consultation"
)

// persona is the system instruction shared by all content-generation calls.
// Ad copy comes back in classy colloquial Egyptian Arabic; visual prompts in English.
const persona = `You are 'Dr. Business', a world-class, witty strategic marketing consultant from Egypt.
Your persona is defined by a blend of high-level professionalism and sharp, 'classy colloquial' Egyptian Arabic.
You must simplify complex marketing concepts with intelligence and confidence, as if you are a successful entrepreneur mentoring another.
Your advice must always be direct, actionable, and laser-focused on results and viral growth.
Your language must be impactful and natural, completely avoiding generic AI phrases, robotic language, or overly casual/street slang.
Every piece of Arabic content you generate must be grammatically perfect with zero spelling mistakes.
You must strictly adhere to the business details provided in the prompt and not invent or assume information for other businesses.`

// analyticsPersona replaces the consultant voice for the mock analytics call,
// which must return nothing but JSON.
const analyticsPersona = `You are an analytics data generator. Only return a JSON object, no other text.`

// Persona returns the system instruction for content-generation calls.
func Persona() string { return persona }

// AnalyticsPersona returns the system instruction for the analytics call.
func AnalyticsPersona() string { return analyticsPersona }

// Strategy asks for the high-level viral marketing strategy.
func Strategy(d consultation.ConsultationData) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Based on this business profile:
%s
Create a high-level, concise viral marketing strategy. Provide a catchy, powerful title, a one-paragraph persuasive summary, and 3-5 clear, actionable strategic steps, all in ARABIC.`, d.BusinessContext()), nil
}

// Week1 asks for the fully detailed first-week plan: exactly 7 posts, Sunday
// through Saturday, Arabic copy with a hook and CTA, English visual prompts.
func Week1(d consultation.ConsultationData) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Based on this business profile:
%s
Generate a detailed social media plan for the FIRST WEEK ONLY. Create exactly 7 posts (Sunday to Saturday). For each, provide: A powerful ARABIC caption with a strong hook and CTA. Relevant ARABIC hashtags. A detailed, artistic visual prompt in ENGLISH with NO spelling mistakes. The visual prompt must describe imagery only and must NOT ask for any text, letters, words, or captions rendered inside the image. The post's platform and type.`, d.BusinessContext()), nil
}

// FutureWeeks asks for the lighter-weight plans for weeks 2 through 4.
func FutureWeeks(d consultation.ConsultationData) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Based on the same business profile:
%s
Generate a summary and simple post ideas for the next three weeks (Week 2, 3, 4). For each week, provide a one-sentence strategic summary and 3-4 simple, creative post ideas (day, platform, idea) in ARABIC.`, d.BusinessContext()), nil
}

// DetailedWeek expands a future week's simple ideas into full posts.
// ideas is the pre-rendered "- day on platform: idea" list.
func DetailedWeek(d consultation.ConsultationData, ideas []string) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Business Profile:
- Name: %s
- Field: %s
- Audience: %s

Simple Post Ideas for the week:
%s

Based STRICTLY on the business profile and the ideas above, expand them into a detailed social media plan.
For each idea, generate: 1. An ARABIC caption with a strong hook and clear CTA. 2. Relevant ARABIC hashtags. 3. A detailed, artistic visual prompt in ENGLISH with NO spelling mistakes, describing imagery only with no text rendered in the image. 4. A suitable 'postType'.
Return the response as a JSON array.`,
		d.Business.Name, d.Business.Field, d.Audience.Description, strings.Join(ideas, "\n")), nil
}

// CaptionVariations asks for three alternative captions for an existing post.
func CaptionVariations(originalCaption, businessContext string) string {
	return fmt.Sprintf(`Business Context: %s
Original Caption: "%s"

Generate 3 alternative, more engaging captions in ARABIC based on the original.`, businessContext, originalCaption)
}

// ElaborateStep asks for a markdown deep-dive on one strategy step.
func ElaborateStep(businessContext, step string) string {
	return fmt.Sprintf(`Business Context: %s

Strategic Step: "%s"

Elaborate on this strategic step in ARABIC. Provide a detailed, actionable explanation with examples, formatted in markdown. Use bolding for emphasis.`, businessContext, step)
}

// Analytics asks for plausible mock dashboard numbers.
func Analytics(businessContext string) string {
	return fmt.Sprintf(`Business Context: %s

Generate realistic but mock analytics data for a social media dashboard. Provide numbers for follower growth (value and trend %%), engagement rate (value and trend %%), and reach (value and trend %%). Also provide 7 numbers for weekly performance (Sunday to Saturday) as percentages from 0 to 100.`, businessContext)
}

// EnhanceVisual rewrites a user-supplied visual prompt for the image model.
func EnhanceVisual(p string) string {
	return fmt.Sprintf(`You are a creative visual director. Enhance the following user prompt to make it more detailed, artistic, and effective for an AI image generator. Add details about style, lighting, composition, and mood. The output should ONLY be the enhanced prompt text, nothing else. Original prompt: "%s"`, p)
}

// TrendingTopics asks for the current Egyptian small-business marketing trends.
func TrendingTopics() string {
	return "What are the top 3 trending marketing topics and social media trends in Egypt right now for small businesses? Present them as a short, engaging markdown list, with each main topic as a level 3 heading (###)."
}
