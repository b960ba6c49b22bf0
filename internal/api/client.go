package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muynuddinr/work-management-system/internal/credential"
)

// Client is a thin HTTP client for the work-management REST API. It
// attaches the persisted bearer token to outgoing requests, maps error
// responses onto the RequestError/StatusError taxonomy and tears down
// the persisted session when the backend answers 401. There is no retry
// policy: every failure propagates to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credential.Store
	logger     *zap.Logger

	// onUnauthorized is invoked once per 401 response, after the
	// persisted session has been cleared.
	onUnauthorized func()

	Auth          *AuthService
	Users         *UsersService
	Attendance    *AttendanceService
	Tasks         *TasksService
	WorkLogs      *WorkLogsService
	Evaluations   *EvaluationsService
	Messages      *MessagesService
	Announcements *AnnouncementsService
	Documents     *DocumentsService
	Notifications *NotificationsService
	Dashboard     *DashboardService
}

// NewClient creates a client for the API rooted at baseURL. creds
// supplies the bearer token for authenticated requests.
func NewClient(baseURL string, creds credential.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds:  creds,
		logger: logger,
	}

	c.Auth = &AuthService{c: c}
	c.Users = &UsersService{c: c}
	c.Attendance = &AttendanceService{c: c}
	c.Tasks = &TasksService{c: c}
	c.WorkLogs = &WorkLogsService{c: c}
	c.Evaluations = &EvaluationsService{c: c}
	c.Messages = &MessagesService{c: c}
	c.Announcements = &AnnouncementsService{c: c}
	c.Documents = &DocumentsService{c: c}
	c.Notifications = &NotificationsService{c: c}
	c.Dashboard = &DashboardService{c: c}

	return c
}

// OnUnauthorized registers the hook run when any request receives a
// 401. The hook fires after the persisted session is cleared, exactly
// once per response, and the 401 still propagates to the caller.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// envelope is the standard response wrapper used by the backend. Some
// endpoints (notably auth) return their payload at the top level, in
// which case Data is absent and the whole body is decoded instead.
type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do builds the request, attaches the bearer token when one is
// persisted, and decodes the JSON response into result.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, method, path, result)
}

// upload performs a multipart request with a single file part plus
// optional extra form fields.
func (c *Client) upload(
	ctx context.Context,
	method string,
	path string,
	fieldName string,
	fileName string,
	file io.Reader,
	fields map[string]string,
	result interface{},
) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("creating multipart field %s: %w", fieldName, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("writing file %s: %w", fileName, err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("writing field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, method, path, result)
}

// download performs a GET and returns the raw response body, for
// endpoints that serve file content rather than JSON.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.attachToken(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Method: http.MethodGet, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(http.MethodGet, path, resp.StatusCode, data)
	}

	return data, nil
}

// send dispatches a prepared request and handles the shared response
// path: token attachment, status mapping and envelope decoding.
func (c *Client) send(req *http.Request, method, path string, result interface{}) error {
	c.attachToken(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(method, path, resp.StatusCode, respBody)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	// Most endpoints wrap their payload in the success envelope.
	var env envelope
	if json.Unmarshal(respBody, &env) == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
		}
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// attachToken sets the Authorization header when a token is persisted.
func (c *Client) attachToken(req *http.Request) {
	if c.creds == nil {
		return
	}
	token, _, err := c.creds.Load()
	if err != nil || token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// statusError maps an error response onto a StatusError. A 401 also
// clears the persisted session and fires the unauthorized hook before
// the error propagates.
func (c *Client) statusError(method, path string, status int, body []byte) error {
	if status == http.StatusUnauthorized {
		if c.creds != nil {
			if err := c.creds.Clear(); err != nil {
				c.logger.Warn("clearing session after 401", zap.Error(err))
			}
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	return &StatusError{
		Status:  status,
		Method:  method,
		Path:    path,
		Message: extractMessage(status, body),
		Body:    body,
	}
}
