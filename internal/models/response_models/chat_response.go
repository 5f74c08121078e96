package response_models

type ChatResponse struct {
	Reply string `json:"reply"`
}

type SentimentResult struct {
	Label  string  `json:"label"` // positive | negative | neutral
	Score  float64 `json:"score"`
	Source string  `json:"source"` // llm | keyword
}
