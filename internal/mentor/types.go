package mentor

// represents one turn of a mentor conversation
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// payload sent to the mentor backend
type QueryRequest struct {
	Input   string    `json:"input"`
	Mission string    `json:"mission,omitempty"`
	Logs    string    `json:"logs,omitempty"`
	History []Message `json:"history,omitempty"`
}

// reply from the mentor backend
type QueryResponse struct {
	Session string `json:"session"`
	IDE     string `json:"ide,omitempty"`
	Logs    string `json:"logs,omitempty"`
}
