package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momento-app/momento/internal/client/models"
)

func newClient(t *testing.T, srv *httptest.Server) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func setAuthCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{Name: AuthCookieName, Value: value, Path: "/"})
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLogin_SetsCookie_AndCurrentUserCarriesIt(t *testing.T) {
	var sawCookie bool

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/jwt/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@b.com", r.PostForm.Get("username"))
		assert.Equal(t, "secret1", r.PostForm.Get("password"))
		setAuthCookie(w, "tok")
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(AuthCookieName)
		if err != nil || ck.Value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		sawCookie = true
		_ = json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "a@b.com", IsActive: true})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := newClient(t, srv)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "a@b.com", "secret1"))

	u, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	require.True(t, sawCookie)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "u1", u.ID)
}

func TestLogin_BadCredentials_ReturnsAuthErrorWithDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "LOGIN_BAD_CREDENTIALS"})
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv)

	err := c.Login(context.Background(), "a@b.com", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "LOGIN_BAD_CREDENTIALS", authErr.Reason)
}

func TestCurrentUser_401_IsGuestSignal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv)

	u, err := c.CurrentUser(context.Background())
	require.Nil(t, u)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCurrentUser_5xx_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv)

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFeed_DecodesPosts(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.Post{
			{ID: "p2", AuthorEmail: "b@b.com", CreatedAt: created.Add(time.Hour)},
			{ID: "p1", AuthorEmail: "a@b.com", CreatedAt: created, Likes: []string{"u2"}},
		})
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv)

	posts, err := c.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Equal(t, []string{"u2"}, posts[1].Likes)
}

func TestUpload_SendsMultipartFileAndCaption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "sunset.jpg", hdr.Filename)

		assert.Equal(t, "evening sky", r.FormValue("caption"))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv)

	err := c.Upload(context.Background(), "sunset.jpg", []byte{0xFF, 0xD8}, "evening sky")
	require.NoError(t, err)
}

func TestDeletePost_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"ok", http.StatusOK, nil},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"gone", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/posts/p1", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)
			c := newClient(t, srv)

			err := c.DeletePost(context.Background(), "p1")
			if tt.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestTransportFailure_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newClient(t, srv)
	srv.Close() // connection refused from here on

	err := c.Login(context.Background(), "a@b.com", "secret1")
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = c.Feed(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSessionExpiry_ReadsJWTExpFromCookie(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setAuthCookie(w, signedToken(t, exp))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv)

	_, ok := c.SessionExpiry()
	require.False(t, ok, "no cookie before login")

	require.NoError(t, c.Login(context.Background(), "a@b.com", "secret1"))

	got, ok := c.SessionExpiry()
	require.True(t, ok)
	assert.True(t, got.Equal(exp), "got %v want %v", got, exp)
}

func TestLogout_ClearsCookieEvenWhenRemoteFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/jwt/login", func(w http.ResponseWriter, r *http.Request) {
		setAuthCookie(w, signedToken(t, time.Now().Add(time.Hour)))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /auth/jwt/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := newClient(t, srv)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "a@b.com", "secret1"))
	_, ok := c.SessionExpiry()
	require.True(t, ok)

	err := c.Logout(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnavailable))

	_, ok = c.SessionExpiry()
	assert.False(t, ok, "cookie must be gone after logout")
}
