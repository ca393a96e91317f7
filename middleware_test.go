package envbar_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envbar"
)

// authStub stores a fixed username in the request context the same way a
// host auth middleware would.
func authStub(username string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(envbar.WithUser(r.Context(), username)))
		})
	}
}

const pageHTML = `<!DOCTYPE html><html><head><title>t</title></head><body><h1>hello</h1></body></html>`

func htmlHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, pageHTML)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	newBar := func(t *testing.T, opts ...envbar.Option) *envbar.Bar {
		t.Helper()
		bar, err := envbar.Enable(append([]envbar.Option{envbar.WithURLs(testURLs)}, opts...)...)
		require.NoError(t, err)
		return bar
	}

	t.Run("injects before closing body tag", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(htmlHandler()))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/posts", nil))

		body := rec.Body.String()
		assert.Contains(t, body, `<style id="env-switcher-style">`)
		assert.Contains(t, body, `class="env-switcher env-switcher-production"`)
		assert.Contains(t, body, `href="https://example.local/posts"`)

		// The fragment sits between the page content and </body>.
		assert.Less(t, strings.Index(body, "<h1>hello</h1>"), strings.Index(body, "env-switcher-style"))
		assert.Less(t, strings.Index(body, "env-switcher-style"), strings.Index(body, "</body>"))
	})

	t.Run("unauthenticated response is byte-identical", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := bar.Middleware(htmlHandler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/", nil))

		assert.Equal(t, pageHTML, rec.Body.String())
	})

	t.Run("unlisted user response is byte-identical", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t, envbar.WithAllowedUsers("admin"))
		h := authStub("editor")(bar.Middleware(htmlHandler()))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/", nil))

		assert.Equal(t, pageHTML, rec.Body.String())
	})

	t.Run("non-html passes through untouched", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"ok":true}`)
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/api", nil))

		assert.Equal(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("skip paths pass through untouched", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t, envbar.WithSkipPaths("/healthz"))
		h := authStub("admin")(bar.Middleware(htmlHandler()))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/healthz", nil))

		assert.Equal(t, pageHTML, rec.Body.String())
	})

	t.Run("style injected even without configured urls", func(t *testing.T) {
		t.Parallel()

		bar, err := envbar.Enable(envbar.WithURLs(envbar.URLs{}))
		require.NoError(t, err)
		h := authStub("admin")(bar.Middleware(htmlHandler()))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/", nil))

		assert.Contains(t, rec.Body.String(), `<style id="env-switcher-style">`)
		assert.NotContains(t, rec.Body.String(), `<div id="env-switcher"`)
	})

	t.Run("content-length corrected", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Header().Set("Content-Length", strconv.Itoa(len(pageHTML)))
			_, _ = io.WriteString(w, pageHTML)
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/", nil))

		assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
		assert.Greater(t, rec.Body.Len(), len(pageHTML))
	})

	t.Run("multibyte content before closing tag", func(t *testing.T) {
		t.Parallel()

		// Unicode lowercasing changes the byte length of these runes
		// (U+023A grows, U+0130 shrinks), so the splice offset must be
		// computed against the original bytes.
		content := strings.Repeat("Ⱥ", 100) + strings.Repeat("İ", 50)
		page := "<html><BODY>" + content + "</BODY></html>"

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = io.WriteString(w, page)
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/", nil))

		body := rec.Body.String()
		assert.Contains(t, body, content)
		assert.Contains(t, body, "env-switcher-style")
		assert.Less(t, strings.Index(body, content), strings.Index(body, "env-switcher-style"))
		assert.True(t, strings.HasSuffix(body, "</BODY></html>"))
	})

	t.Run("body-less non-html keeps status code", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("status code preserved", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, "<html><body>not found</body></html>")
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "env-switcher-style")
	})

	t.Run("missing body tag appends fragment", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, "<p>fragment only</p>")
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/", nil))

		assert.True(t, strings.HasPrefix(rec.Body.String(), "<p>fragment only</p>"))
		assert.Contains(t, rec.Body.String(), "env-switcher-style")
	})

	t.Run("sniffs html without content-type", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, pageHTML)
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.com/", nil))

		assert.Contains(t, rec.Body.String(), "env-switcher-style")
	})

	t.Run("active environment reaches downstream context", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		var seen envbar.Environment
		h := authStub("admin")(bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = envbar.FromContext(r.Context())
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "https://example.test/", nil))

		assert.Equal(t, envbar.Testing, seen)
	})

	t.Run("nonce carried on style tag", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t, envbar.WithNonceExtractor(func(r *http.Request) string {
			return r.Header.Get("X-Nonce")
		}))
		h := authStub("admin")(bar.Middleware(htmlHandler()))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "https://example.com/", nil)
		req.Header.Set("X-Nonce", "n0nce")
		h.ServeHTTP(rec, req)

		assert.Contains(t, rec.Body.String(), ` nonce="n0nce"`)
	})

	t.Run("idempotent across identical requests", func(t *testing.T) {
		t.Parallel()

		bar := newBar(t)
		h := authStub("admin")(bar.Middleware(htmlHandler()))

		first := httptest.NewRecorder()
		second := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest("GET", "https://example.com/posts", nil))
		h.ServeHTTP(second, httptest.NewRequest("GET", "https://example.com/posts", nil))

		assert.Equal(t, first.Body.String(), second.Body.String())
	})
}

func TestMiddlewareWithRouter(t *testing.T) {
	t.Parallel()

	bar, err := envbar.Enable(envbar.WithURLs(testURLs), envbar.WithAllowedUsers("admin"))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(authStub("admin"))
	r.Use(bar.Middleware)
	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html><body>dashboard</body></html>")
	})
	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	t.Run("html route gets the bar", func(t *testing.T) {
		req, err := http.NewRequest("GET", srv.URL+"/dashboard", nil)
		require.NoError(t, err)
		req.Host = "example.com"

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "env-switcher-production")
	})

	t.Run("json route untouched", func(t *testing.T) {
		req, err := http.NewRequest("GET", srv.URL+"/api/status", nil)
		require.NoError(t, err)
		req.Host = "example.com"

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"status":"ok"}`, string(body))
	})
}
