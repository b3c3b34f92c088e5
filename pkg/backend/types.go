package backend

import "encoding/json"

// apiResponse is the backend's success body: a data array of generated
// results, plus composition metadata some endpoints include.
type apiResponse struct {
	Data            []resultItem    `json:"data"`
	Error           json.RawMessage `json:"error,omitempty"`
	InputImages     *int            `json:"input_images,omitempty"`
	CompositionType string          `json:"composition_type,omitempty"`
}

// resultItem is one generated image or video.
type resultItem struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}
