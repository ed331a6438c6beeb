package sundhed

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

const fakeSessionCookie = "SRVNAME"

// a minimal stand-in for the three sundhed.dk endpoints
type fakeSundhed struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	// the location the guide page redirects to, relative to the server
	redirectTarget string

	bootstrapStatus int
	filtersStatus   int
	searchStatus    int
	searchBody      string
	// delays every search response
	searchDelay time.Duration
}

type recordedRequest struct {
	Path    string
	Query   url.Values
	Header  http.Header
	Cookies map[string]string
}

func newFakeSundhed(t testing.TB) *fakeSundhed {
	f := &fakeSundhed{
		bootstrapStatus: http.StatusOK,
		filtersStatus:   http.StatusOK,
		searchStatus:    http.StatusOK,
		searchBody:      `{"Results":[{"Name":"Tandlægerne Århus","Zip":"8000"}],"TotalCount":1}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(guidePath, f.handleGuide)
	mux.HandleFunc(additionalFiltersPath, f.handleFilters)
	mux.HandleFunc(searchPath, f.handleSearch)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSundhed) record(r *http.Request) {
	cookies := map[string]string{}
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Header:  r.Header.Clone(),
		Cookies: cookies,
	})
}

func (f *fakeSundhed) handleGuide(w http.ResponseWriter, r *http.Request) {
	f.record(r)

	// the first hit assigns the server cookie and redirects like the real site
	if r.URL.Query().Get("srv") == "" {
		target := guidePath + "?" + r.URL.RawQuery + "&srv=web01"
		f.mu.Lock()
		f.redirectTarget = target
		f.mu.Unlock()

		http.SetCookie(w, &http.Cookie{Name: fakeSessionCookie, Value: "web01", Path: "/"})
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	if f.bootstrapStatus != http.StatusOK {
		w.WriteHeader(f.bootstrapStatus)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.Write([]byte(`<html><head><title> Find behandler </title></head><body></body></html>`))
}

func (f *fakeSundhed) handleFilters(w http.ResponseWriter, r *http.Request) {
	f.record(r)

	if f.filtersStatus != http.StatusOK {
		w.WriteHeader(f.filtersStatus)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "filters", Value: "seen", Path: "/"})
	w.Header().Set("content-type", "application/json")
	w.Write([]byte(`{"Filters":[]}`))
}

func (f *fakeSundhed) handleSearch(w http.ResponseWriter, r *http.Request) {
	f.record(r)

	if f.searchDelay > 0 {
		select {
		case <-time.After(f.searchDelay):
		case <-r.Context().Done():
			return
		}
	}

	if f.searchStatus != http.StatusOK {
		w.WriteHeader(f.searchStatus)
		return
	}
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Write([]byte(f.searchBody))
}

func (f *fakeSundhed) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeSundhed) Paths() []string {
	var paths []string
	for _, r := range f.Requests() {
		paths = append(paths, r.Path)
	}
	return paths
}

func (f *fakeSundhed) RequestsTo(path string) []recordedRequest {
	var out []recordedRequest
	for _, r := range f.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeSundhed) FinalGuideUrl() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.server.URL + f.redirectTarget
}
