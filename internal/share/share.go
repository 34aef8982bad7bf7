// Package share builds web share-intent URLs so clients can push a generated
// post to their social accounts straight from the dashboard.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/drbusiness/platform/internal/prescription"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformX         Platform = "x"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformWhatsApp  Platform = "whatsapp"
)

var AllPlatforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformTikTok,
	PlatformX,
	PlatformLinkedIn,
	PlatformWhatsApp,
}

// ShareLink pairs a platform with its prefilled share-intent URL. Platforms
// without a web share intent (Instagram, TikTok) get an empty URL; the
// dashboard falls back to copy-to-clipboard for those.
type ShareLink struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

// Links builds share links for one post. pageURL is the public dashboard page
// the share should point back to.
func Links(post prescription.DetailedPost, pageURL string) []ShareLink {
	text := PostText(post)
	links := make([]ShareLink, 0, len(AllPlatforms))
	for _, p := range AllPlatforms {
		links = append(links, ShareLink{Platform: p, URL: shareURL(p, pageURL, post.GeneratedImage, text)})
	}
	return links
}

// PostText renders the caption and hashtags the way they get pasted into a
// social composer.
func PostText(post prescription.DetailedPost) string {
	caption := strings.TrimSpace(post.Caption)
	hashtags := strings.TrimSpace(post.Hashtags)
	if hashtags == "" {
		return caption
	}
	return fmt.Sprintf("%s\n\n%s", caption, hashtags)
}

// Normalize maps a post's free-form platform name onto a known Platform.
func Normalize(name string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "facebook", "fb":
		return PlatformFacebook, true
	case "instagram", "ig":
		return PlatformInstagram, true
	case "tiktok", "tik tok":
		return PlatformTikTok, true
	case "x", "twitter":
		return PlatformX, true
	case "linkedin":
		return PlatformLinkedIn, true
	case "whatsapp":
		return PlatformWhatsApp, true
	}
	return "", false
}

func shareURL(platform Platform, pageURL, imageURL, text string) string {
	switch platform {
	case PlatformFacebook:
		return fmt.Sprintf("https://www.facebook.com/sharer/sharer.php?u=%s&quote=%s",
			url.QueryEscape(pageURL),
			url.QueryEscape(text),
		)
	case PlatformX:
		body := text
		if pageURL != "" {
			body = fmt.Sprintf("%s\n\n%s", text, pageURL)
		}
		return fmt.Sprintf("https://twitter.com/intent/tweet?text=%s", url.QueryEscape(body))
	case PlatformLinkedIn:
		return fmt.Sprintf("https://www.linkedin.com/sharing/share-offsite/?url=%s", url.QueryEscape(pageURL))
	case PlatformWhatsApp:
		body := text
		if imageURL != "" {
			body = fmt.Sprintf("%s\n%s", text, imageURL)
		}
		return fmt.Sprintf("https://wa.me/?text=%s", url.QueryEscape(body))
	}
	return ""
}
