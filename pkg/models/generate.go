package models

// InferenceConfig shapes generator sampling toward short, assertive,
// low-variance completions.
type InferenceConfig struct {
	MaxTokens     int     `yaml:"max_tokens" json:"max_tokens"`
	RepeatPenalty float64 `yaml:"repeat_penalty" json:"repeat_penalty"`
	RepeatLastN   int     `yaml:"repeat_last_n" json:"repeat_last_n"`
	Temperature   float64 `yaml:"temperature" json:"temperature"`
	TopK          int     `yaml:"top_k" json:"top_k"`
	TopP          float64 `yaml:"top_p" json:"top_p"`
}

// CompletionRequest is a llama.cpp-server /completion request.
type CompletionRequest struct {
	Prompt        string  `json:"prompt"`
	NPredict      int     `json:"n_predict"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	RepeatLastN   int     `json:"repeat_last_n"`
	Temperature   float64 `json:"temperature"`
	TopK          int     `json:"top_k"`
	TopP          float64 `json:"top_p"`
	Stream        bool    `json:"stream"`
}

// CompletionResponse is the subset of a /completion response the service reads.
type CompletionResponse struct {
	Content string `json:"content"`
	Stop    bool   `json:"stop,omitempty"`
	Model   string `json:"model,omitempty"`
}
