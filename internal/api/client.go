package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Service is the full set of API calls shutter makes. It is implemented by
// *Client and can be faked in tests.
type Service interface {
	FetchPhotos(ctx context.Context) ([]Photo, error)
	FetchUserPhotos(ctx context.Context, userID int64) ([]Photo, error)
	FetchPhoto(ctx context.Context, photoID int64) (*Photo, error)
	CreatePhoto(ctx context.Context, form PhotoForm) (*Photo, error)
	UpdatePhoto(ctx context.Context, photoID int64, form PhotoForm) (*Photo, error)
	DeletePhoto(ctx context.Context, photoID int64) error

	FetchAlbums(ctx context.Context) ([]Album, error)
	FetchUserAlbums(ctx context.Context, userID int64) ([]Album, error)
	FetchAlbum(ctx context.Context, albumID int64) (*Album, error)
	CreateAlbum(ctx context.Context, form AlbumForm) (int64, error)
	UpdateAlbum(ctx context.Context, albumID int64, form AlbumForm) (*Album, error)
	DeleteAlbum(ctx context.Context, albumID int64) error

	FetchComments(ctx context.Context, photoID int64) ([]Comment, error)
	CreateComment(ctx context.Context, photoID int64, form CommentForm) (*Comment, error)
	UpdateComment(ctx context.Context, photoID, commentID int64, form CommentForm) (*Comment, error)
	DeleteComment(ctx context.Context, photoID, commentID int64) error
	CreateReply(ctx context.Context, photoID, commentID int64, form CommentForm) (*Comment, error)
	DeleteReply(ctx context.Context, photoID, commentID, replyID int64) (*Comment, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the photo-sharing HTTP API.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	userAgent     string
	sessionCookie string
	csrfToken     string
	newRequestID  func() string
}

// Options tune a Client. The zero value is usable.
type Options struct {
	// SessionCookie is sent as the "session" cookie on every request.
	SessionCookie string
	// CSRFToken is sent as the csrf_token cookie and X-CSRFToken header.
	CSRFToken string
	// HTTPClient overrides the transport. Requests are bounded only by their
	// context, so a supplied client should not set Timeout either.
	HTTPClient *http.Client
}

const (
	defaultAPIURL    = "http://127.0.0.1:5000"
	defaultUserAgent = "shutter/0.1"
	maxErrorBody     = 1 << 20
)

// NewClient builds a Client for the API rooted at apiURL.
func NewClient(apiURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:       base,
		http:          httpClient,
		userAgent:     defaultUserAgent,
		sessionCookie: strings.TrimSpace(opts.SessionCookie),
		csrfToken:     strings.TrimSpace(opts.CSRFToken),
		newRequestID:  uuid.NewString,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// requestBody is an encoded request entity.
type requestBody struct {
	contentType string
	data        []byte
}

// File is binary content attached to a multipart form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type formField struct {
	name  string
	value string
}

func encodeMultipart(fields []formField, fileField string, file *File) (*requestBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if file != nil && len(file.Data) > 0 {
		header := make(textproto.MIMEHeader)
		name := file.Name
		if name == "" {
			name = "upload"
		}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, name))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}
	return &requestBody{contentType: w.FormDataContentType(), data: buf.Bytes()}, nil
}

// do performs one round trip. Non-success statuses come back as
// *ResponseError; dest may be nil when the body is not needed.
func (c *Client) do(ctx context.Context, method, path string, body *requestBody, dest any) error {
	resp, reqID, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readResponseError(resp, method, path, reqID)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doList handles endpoints that answer either a JSON array or, for an
// unknown scope, an error object with a success status.
func (c *Client) doList(ctx context.Context, path string, dest any) error {
	var raw json.RawMessage
	resp, reqID, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readResponseError(resp, http.MethodGet, path, reqID)
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		respErr := &ResponseError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			RequestID:  reqID,
			Body:       trimmed,
			Payload:    parseErrorPayload(trimmed),
		}
		if respErr.Payload == nil {
			respErr.Payload = &ErrorPayload{Err: "unexpected object response"}
		}
		return respErr
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body *requestBody) (*http.Response, string, error) {
	if c == nil {
		return nil, "", fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	reqID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	if c.sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.sessionCookie})
	}
	if c.csrfToken != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: c.csrfToken})
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, reqID, fmt.Errorf("execute request: %w", err)
	}
	return resp, reqID, nil
}

func readResponseError(resp *http.Response, method, path, reqID string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &ResponseError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		RequestID:  reqID,
		Body:       body,
		Payload:    parseErrorPayload(body),
	}
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
