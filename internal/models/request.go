package models

type GenerateImageRequest struct {
	Prompt      string `json:"prompt" example:"a sunset over the mountains"`
	AspectRatio string `json:"aspectRatio,omitempty" example:"16:9"`
}

// GenerateContentRequest drives the prompt sent to the text model.
// ContentType is one of "heading", "subheading" or "paragraph"; anything else
// produces a generic prompt.
type GenerateContentRequest struct {
	ContentType    string `json:"contentType" example:"paragraph"`
	Context        string `json:"context" example:"launching a developer toolbox"`
	TargetAudience string `json:"targetAudience,omitempty" example:"general"`
	Tone           string `json:"tone,omitempty" example:"professional"`
	WordLength     int    `json:"wordLength,omitempty" example:"200"`
}

type SaveContentRequest struct {
	Title       string `json:"title,omitempty" example:"Paragraph"`
	Content     string `json:"content"`
	ContentType string `json:"contentType,omitempty" example:"paragraph"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
