package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client talks to the workflow-automation webhook layer. Every call takes a
// context and the underlying HTTP client carries a hard timeout; a hung
// workflow run can stall one request, never the process.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ParseCV uploads a PDF for text extraction and session creation.
func (c *Client) ParseCV(ctx context.Context, userID uint, filename string, file io.Reader) (*ParseResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart file failed: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy upload body failed: %w", err)
	}
	if err := writer.WriteField("userId", strconv.FormatUint(uint64(userID), 10)); err != nil {
		return nil, fmt.Errorf("write multipart field failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse-cv", &body)
	if err != nil {
		return nil, fmt.Errorf("build parse request failed: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result ParseResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Optimize runs one AI edit turn against the session's current text.
func (c *Client) Optimize(ctx context.Context, req OptimizeRequest) (*OptimizeResult, error) {
	var result OptimizeResult
	if err := c.postJSON(ctx, "/optimize-cv", req, &result); err != nil {
		return nil, err
	}
	if result.Kind == "" {
		result.Kind = KindReply
	}
	if !result.Kind.Valid() {
		return nil, fmt.Errorf("optimize returned unknown result type %q", result.Kind)
	}
	return &result, nil
}

// Finalize requests the permanent downloadable artifact for a session.
func (c *Client) Finalize(ctx context.Context, sessionID string, userID uint) (*FinalizeResult, error) {
	payload := map[string]interface{}{
		"sessionId": sessionID,
		"userId":    userID,
	}
	var result FinalizeResult
	if err := c.postJSON(ctx, "/finalize-cv", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateCV renders a downloadable CV from the structured form document.
func (c *Client) GenerateCV(ctx context.Context, userID uint, doc CVDocument) (*FinalizeResult, error) {
	payload := map[string]interface{}{
		"userId": userID,
		"cv":     doc,
	}
	var result FinalizeResult
	if err := c.postJSON(ctx, "/create-cv", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AnalyzeBusiness(ctx context.Context, link string) (*BusinessReport, error) {
	payload := map[string]string{"link": link}
	var result BusinessReport
	if err := c.postJSON(ctx, "/analyze-business", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CompareBusinesses(ctx context.Context, linkA, linkB string) (*ComparisonReport, error) {
	payload := map[string]string{"linkA": linkA, "linkB": linkB}
	var result ComparisonReport
	if err := c.postJSON(ctx, "/compare-businesses", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SubmitContact(ctx context.Context, payload ContactPayload) error {
	return c.postJSON(ctx, "/contact-us", payload, nil)
}

func (c *Client) RequestConsultation(ctx context.Context, payload ConsultationPayload) error {
	return c.postJSON(ctx, "/consultation-request", payload, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal workflow request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("build workflow request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("workflow request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read workflow response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("workflow response status %d: %s", resp.StatusCode, truncate(string(raw), 512))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse workflow json failed: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
