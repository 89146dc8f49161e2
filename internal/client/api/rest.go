package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/hoaxify/hoaxify-cli/internal/logging"
)

const basePath = "/api/1.0"

// RESTClient is the HTTP implementation of Gateway. It is stateless
// apart from its configuration: credentials are pulled from the
// CredentialSource per request.
type RESTClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     logging.Logger
}

// NewRESTClient builds a gateway for the API at baseURL
// (e.g. "http://localhost:8080"). timeout bounds each request at the
// transport level; zero means no timeout.
func NewRESTClient(baseURL string, creds CredentialSource, log logging.Logger, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log.With("component", "gateway"),
	}
}

func (c *RESTClient) Signup(ctx context.Context, req SignupRequest) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/users", nil, req, &user, nil)
	return user, err
}

// Login posts an empty body; the credentials travel in the Basic auth
// header. The supplied credentials are used for this call only, they do
// not touch the CredentialSource.
func (c *RESTClient) Login(ctx context.Context, creds Credentials) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/login", nil, struct{}{}, &user, &creds)
	return user, err
}

func (c *RESTClient) ListUsers(ctx context.Context, page, size int) (models.Page[models.User], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var result models.Page[models.User]
	err := c.do(ctx, http.MethodGet, "/users", q, nil, &result, nil)
	return result, err
}

func (c *RESTClient) GetUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, nil, &user, nil)
	return user, err
}

func (c *RESTClient) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, "/users/"+strconv.FormatInt(id, 10), nil, upd, &user, nil)
	return user, err
}

func (c *RESTClient) PostHoax(ctx context.Context, content string) (models.Hoax, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	var hoax models.Hoax
	err := c.do(ctx, http.MethodPost, "/hoaxes", nil, body, &hoax, nil)
	return hoax, err
}

func (c *RESTClient) ListHoaxes(ctx context.Context, page, size int) (models.Page[models.Hoax], error) {
	var result models.Page[models.Hoax]
	err := c.do(ctx, http.MethodGet, "/hoaxes", hoaxQuery(page, size), nil, &result, nil)
	return result, err
}

func (c *RESTClient) ListUserHoaxes(ctx context.Context, username string, page, size int) (models.Page[models.Hoax], error) {
	path := "/users/" + url.PathEscape(username) + "/hoaxes"
	var result models.Page[models.Hoax]
	err := c.do(ctx, http.MethodGet, path, hoaxQuery(page, size), nil, &result, nil)
	return result, err
}

// hoaxQuery builds the query shape of both hoax listings: newest first.
func hoaxQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	q.Set("sort", "id,desc")
	return q
}

// do performs one HTTP call. body is JSON-encoded when non-nil; the
// response body is decoded into out when non-nil. override, when set,
// replaces the CredentialSource credentials for this call (used by
// Login, which authenticates as a not-yet-current user).
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out any, override *Credentials) error {
	u := c.baseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if override != nil {
		req.SetBasicAuth(override.Username, override.Password)
	} else if creds, ok := c.creds.Credentials(); ok {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp)
		c.log.Warn(ctx, "request rejected", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return apiErr
	}

	c.log.Debug(ctx, "request ok", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError classifies an HTTP error response. A payload with a
// validationErrors map becomes a *ValidationError; anything else,
// including an undecodable body, becomes an *APIError carrying whatever
// message could be extracted.
func decodeError(resp *http.Response) error {
	var payload struct {
		Message          string            `json:"message"`
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	data, _ := io.ReadAll(resp.Body)
	// Decoding failures fall through with a zero payload so the caller
	// still gets a typed error instead of a crash.
	_ = json.Unmarshal(data, &payload)

	if payload.ValidationErrors != nil {
		return &ValidationError{Message: payload.Message, Fields: payload.ValidationErrors}
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}
