package request_models

type ChatTurn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message" binding:"required"`
	History []ChatTurn `json:"history"`
}

type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

