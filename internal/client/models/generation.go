package models

import (
	"fmt"
	"math"
	"strings"
)

type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
)

// Platforms lists the supported targets in menu order.
var Platforms = []Platform{PlatformLinkedIn, PlatformTwitter, PlatformInstagram}

type PostLength string

const (
	PostLengthSmall  PostLength = "small"
	PostLengthMedium PostLength = "medium"
	PostLengthLong   PostLength = "long"
)

var PostLengths = []PostLength{PostLengthSmall, PostLengthMedium, PostLengthLong}

const (
	MinImageCount = 1
	MaxImageCount = 3
)

// GenerationRequest is the body of POST /generate_post.
type GenerationRequest struct {
	Topic       string     `json:"topic"`
	Platform    Platform   `json:"platform"`
	ImageCount  int        `json:"imageCount"`
	PostLength  PostLength `json:"postLength"`
	Temperature float64    `json:"temperature"`
}

// DefaultGenerationRequest returns the form defaults: a medium LinkedIn post
// with one image at temperature 0.7.
func DefaultGenerationRequest() GenerationRequest {
	return GenerationRequest{
		Platform:    PlatformLinkedIn,
		ImageCount:  1,
		PostLength:  PostLengthMedium,
		Temperature: 0.7,
	}
}

// Validate checks the request before submission. The topic is checked first.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return invalid("topic", "Please enter a topic")
	}
	if !ValidPlatform(string(r.Platform)) {
		return invalid("platform", fmt.Sprintf("unsupported platform %q", r.Platform))
	}
	if r.ImageCount < MinImageCount || r.ImageCount > MaxImageCount {
		return invalid("imageCount", fmt.Sprintf("image count must be between %d and %d", MinImageCount, MaxImageCount))
	}
	if !ValidPostLength(string(r.PostLength)) {
		return invalid("postLength", fmt.Sprintf("unsupported post length %q", r.PostLength))
	}
	if math.IsNaN(r.Temperature) || r.Temperature < 0 || r.Temperature > 1 {
		return invalid("temperature", "temperature must be between 0 and 1")
	}
	return nil
}

func ValidPlatform(s string) bool {
	for _, p := range Platforms {
		if string(p) == s {
			return true
		}
	}
	return false
}

func ValidPostLength(s string) bool {
	for _, l := range PostLengths {
		if string(l) == s {
			return true
		}
	}
	return false
}

// GenerationResult is what the backend returns for a generated post.
// Images is nil when the backend sent none.
type GenerationResult struct {
	Text            string   `json:"text"`
	Images          []string `json:"images"`
	EngagementScore float64  `json:"engagement_score"`
}

// ScorePercent returns the engagement score clamped to [0,100] and rounded
// for display, e.g. 82.4 -> 82.
func ScorePercent(score float64) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return int(score + 0.5)
}
