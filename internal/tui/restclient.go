package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
)

// manages HTTP requests to the mentor REST API
type MentorClient struct {
	endpoint   string
	httpClient *http.Client
	sessionID  string
}

// creates a new mentor REST client
func NewMentorClient(endpoint string) *MentorClient {
	return &MentorClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: mentorRequestTimeout,
		},
	}
}

// sends one conversation turn to the mentor endpoint; the server
// keeps the conversation, we only carry the session ID
func (c *MentorClient) Query(ctx context.Context, input string) (*MentorResponseMsg, error) {
	payload := mentorQueryRequest{
		Input:     input,
		SessionID: c.sessionID,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/mentor/query", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp mentorErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result mentorQueryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.sessionID = result.SessionID

	return &MentorResponseMsg{
		input: input,
		reply: result.Reply,
		ide:   result.IDE,
	}, nil
}

// returns a tea.Cmd that sends a mentor query
func (c *MentorClient) QueryCmd(input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mentorRequestTimeout)
		defer cancel()

		resp, err := c.Query(ctx, input)
		if err != nil {
			return MentorErrorMsg{input: input, err: err}
		}

		return *resp
	}
}

// REST API request/response types

type mentorQueryRequest struct {
	Input     string `json:"input"`
	SessionID string `json:"session_id,omitempty"`
}

type mentorQueryResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	IDE       string `json:"ide,omitempty"`
	Logs      string `json:"logs,omitempty"`
}

type mentorErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// sent when the mentor replies
type MentorResponseMsg struct {
	input string
	reply string
	ide   string
}

// sent when the mentor request fails
type MentorErrorMsg struct {
	input string
	err   error
}
