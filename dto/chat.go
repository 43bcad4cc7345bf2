package dto

type ChatRequest struct {
	ConversationID uint   `json:"conversation_id"`
	Message        string `json:"message"`
}

type ChatToolCall struct {
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments"`
	Result    map[string]interface{} `json:"result"`
}

type ChatResponse struct {
	ConversationID uint           `json:"conversation_id"`
	Response       string         `json:"response"`
	ToolCalls      []ChatToolCall `json:"tool_calls"`
}
