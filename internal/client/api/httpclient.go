package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/momento-app/momento/internal/client/models"
)

// AuthCookieName is the cookie under which the backend stores the session JWT.
const AuthCookieName = "momentoauth"

// HTTPClient implements Client over the backend's REST API. The session
// credential lives in the cookie jar, so every request after a successful
// Login carries it automatically.
type HTTPClient struct {
	base *url.URL
	hc   *http.Client
}

// NewHTTPClient builds an HTTPClient for the given base URL
// (e.g. "http://localhost:8000"). timeout bounds each request; there are no
// retries.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &HTTPClient{
		base: u,
		hc:   &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *HTTPClient) endpoint(path string) string {
	return c.base.String() + path
}

// send executes the request and maps transport errors to ErrUnavailable.
// Status-code mapping is left to the callers, which know which codes are
// meaningful for their endpoint.
func (c *HTTPClient) send(req *http.Request) (*http.Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// mapStatus converts a non-2xx status into a sentinel error.
func mapStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, code)
	}
}

// detailOf extracts the backend's {"detail": "..."} error body, falling back
// to the given default.
func detailOf(body io.Reader, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fallback
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// Register creates an account via POST /auth/register and returns the
// registered identity. Validation rejections surface as *AuthError.
func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	body, err := json.Marshal(models.NewRegisterRequest(email, password))
	if err != nil {
		return nil, fmt.Errorf("encode register request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/register"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var u models.User
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		return &u, nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, &AuthError{Reason: detailOf(resp.Body, "registration rejected")}
	default:
		return nil, mapStatus(resp.StatusCode)
	}
}

// Login submits credentials to POST /auth/jwt/login as a form, fastapi-users
// style. On 204 the server sets the session cookie, which the jar retains.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/jwt/login"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusBadRequest:
		return &AuthError{Reason: detailOf(resp.Body, "invalid email or password")}
	default:
		return mapStatus(resp.StatusCode)
	}
}

// Logout invalidates the server-side credential via POST /auth/jwt/logout
// and drops the local cookie regardless of the reply.
func (c *HTTPClient) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/jwt/logout"), nil)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		c.clearCookies()
		return err
	}
	defer drain(resp)
	c.clearCookies()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return mapStatus(resp.StatusCode)
}

// clearCookies expires the auth cookie in the jar.
func (c *HTTPClient) clearCookies() {
	c.hc.Jar.SetCookies(c.base, []*http.Cookie{{
		Name:    AuthCookieName,
		Value:   "",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}})
}

// CurrentUser probes GET /users/me. A 401 means no valid credential and maps
// to ErrUnauthorized, the expected guest signal.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/users/me"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatus(resp.StatusCode)
	}

	var u models.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// Feed fetches GET /feed, latest first, in the wire order the server chose.
func (c *HTTPClient) Feed(ctx context.Context) ([]models.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/feed"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatus(resp.StatusCode)
	}

	var posts []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return posts, nil
}

// Upload sends an image as multipart form data to POST /upload. The file
// part is named "file"; a non-empty caption goes into the "caption" field.
func (c *HTTPClient) Upload(ctx context.Context, filename string, data []byte, caption string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if caption != "" {
		if err := mw.WriteField("caption", caption); err != nil {
			return fmt.Errorf("write caption: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/upload"), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}
	return mapStatus(resp.StatusCode)
}

// DeletePost removes a post via DELETE /posts/{id}. Requires ownership;
// 403 maps to ErrUnauthorized and 404 to ErrNotFound.
func (c *HTTPClient) DeletePost(ctx context.Context, postID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/posts/"+url.PathEscape(postID)), nil)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return mapStatus(resp.StatusCode)
}

// SessionExpiry decodes the exp claim of the cookie-carried JWT without
// verifying the signature; the client has no key material and only wants the
// timestamp for display. Returns false when there is no cookie or no usable
// claim.
func (c *HTTPClient) SessionExpiry() (time.Time, bool) {
	for _, ck := range c.hc.Jar.Cookies(c.base) {
		if ck.Name != AuthCookieName || ck.Value == "" {
			continue
		}
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(ck.Value, claims); err != nil {
			return time.Time{}, false
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			return time.Time{}, false
		}
		return exp.Time, true
	}
	return time.Time{}, false
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}
