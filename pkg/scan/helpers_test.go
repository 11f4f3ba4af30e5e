package scan

import (
	"context"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pthscan/pkg/errors"
	"github.com/matzehuels/pthscan/pkg/index"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// anchors renders a minimal simple-index page linking to hrefs.
func anchors(hrefs []string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n")
	for _, h := range hrefs {
		b.WriteString(`<a href="` + html.EscapeString(h) + `">` + html.EscapeString(path.Base(h)) + "</a><br/>\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

// fakeIndex serves a catalog at /simple, release listings at
// /simple/{pkg}/ and artifacts at /files/{name}. Fields must be set
// before serve is called.
type fakeIndex struct {
	root     []string
	listings map[string][]string
	raw      map[string][]byte // listing bodies served verbatim, by package
	files    map[string][]byte
	status   map[string]int // forced status by request path

	mu   sync.Mutex
	hits map[string]int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		listings: make(map[string][]string),
		raw:      make(map[string][]byte),
		files:    make(map[string][]byte),
		status:   make(map[string]int),
		hits:     make(map[string]int),
	}
}

func (f *fakeIndex) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.hits[req.URL.Path]++
			f.mu.Unlock()
			if code, ok := f.status[req.URL.Path]; ok {
				http.Error(w, http.StatusText(code), code)
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/simple", func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, anchors(f.root))
	})
	r.Get("/simple/{pkg}/", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "pkg")
		if body, ok := f.raw[name]; ok {
			w.Write(body)
			return
		}
		hrefs, ok := f.listings[name]
		if !ok {
			http.NotFound(w, req)
			return
		}
		io.WriteString(w, anchors(hrefs))
	})
	r.Get("/files/{name}", func(w http.ResponseWriter, req *http.Request) {
		data, ok := f.files[chi.URLParam(req, "name")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Write(data)
	})
	return r
}

// serve starts the index and returns a client pointed at it.
func (f *fakeIndex) serve(t *testing.T) *index.Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return index.NewClient(index.Options{BaseURL: srv.URL, Logger: quietLogger()})
}

// listingHits counts requests for release listings.
func (f *fakeIndex) listingHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for p, c := range f.hits {
		if strings.HasPrefix(p, "/simple/") {
			n += c
		}
	}
	return n
}

// stubIndex answers from memory: every release listing is empty, so
// every package evaluates negative.
type stubIndex struct {
	root     []string
	listings atomic.Int64
}

func (s *stubIndex) FetchRoot(context.Context) ([]byte, error) {
	return []byte(anchors(s.root)), nil
}

func (s *stubIndex) ListingURL(link string) string {
	return "http://stub.invalid" + link
}

func (s *stubIndex) FetchListing(context.Context, string) ([]byte, error) {
	s.listings.Add(1)
	return []byte(anchors(nil)), nil
}

func (s *stubIndex) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	return nil, errors.New(errors.ErrCodeNotFound, "no artifact at %s", rawURL)
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}
