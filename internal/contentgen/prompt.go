package contentgen

import (
	"fmt"

	"minimalist-backend/internal/models"
)

// BuildPrompt renders the model prompt for a content request. Unknown content
// types get the generic template.
func BuildPrompt(req models.GenerateContentRequest) string {
	switch req.ContentType {
	case "heading":
		return fmt.Sprintf("Generate a compelling heading for: %s.\n"+
			"Target audience: %s.\n"+
			"Tone: %s.\n"+
			"Keep it concise and attention-grabbing.",
			req.Context, req.TargetAudience, req.Tone)
	case "subheading":
		return fmt.Sprintf("Generate a descriptive subheading for: %s.\n"+
			"Target audience: %s.\n"+
			"Tone: %s.\n"+
			"It should support the main heading and provide more context.",
			req.Context, req.TargetAudience, req.Tone)
	case "paragraph":
		return fmt.Sprintf("Write a %d-word paragraph about: %s.\n"+
			"Target audience: %s.\n"+
			"Tone: %s.\n"+
			"The content should be engaging and informative.",
			req.WordLength, req.Context, req.TargetAudience, req.Tone)
	default:
		return fmt.Sprintf("Generate content for: %s.\n"+
			"Target audience: %s.\n"+
			"Tone: %s.\n"+
			"Length: approximately %d words.",
			req.Context, req.TargetAudience, req.Tone, req.WordLength)
	}
}
