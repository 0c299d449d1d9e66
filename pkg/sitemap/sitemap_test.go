package sitemap

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/dtnitsch/sitemap-icons/pkg/fetcher"
)

var testExcluded = []string{"/de/", "/es/", "/fr/", "/it/", "/ru/", "/zh/", "/ja/"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestFilter(t *testing.T) {
	urls := []string{
		"https://www.example.com/get-started/what-is-bitcoin/",
		"https://www.example.com/de/get-started/was-ist-bitcoin/",
		"https://www.example.com/buy-bitcoin/",
		"https://www.example.com/get-started/wallet-basics/",
		"https://www.example.com/ja/get-started/wallet-basics/",
	}

	got := Filter(urls, "/get-started/", testExcluded)
	want := []string{
		"https://www.example.com/get-started/what-is-bitcoin/",
		"https://www.example.com/get-started/wallet-basics/",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	urls := []string{
		"https://x/get-started/c/",
		"https://x/get-started/a/",
		"https://x/get-started/b/",
	}
	got := Filter(urls, "/get-started/", nil)
	if !reflect.DeepEqual(got, urls) {
		t.Errorf("Filter() reordered entries: %v", got)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	if got := Filter(nil, "/get-started/", testExcluded); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
}

const testSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://www.example.com/get-started/what-is-bitcoin/</loc></url>
  <url><loc>
    https://www.example.com/get-started/wallet-basics/
  </loc></url>
  <url><loc>https://www.example.com/fr/get-started/portefeuille/</loc></url>
  <url><loc>https://www.example.com/blog/latest-news/</loc></url>
</urlset>`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(testSitemap))
	}))
	defer server.Close()

	got := Fetch(fetcher.NewFetcher(), server.URL, "/get-started/", testExcluded, discardLogger())
	want := []string{
		"https://www.example.com/get-started/what-is-bitcoin/",
		"https://www.example.com/get-started/wallet-basics/",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fetch() = %v, want %v", got, want)
	}
}

func TestFetchNon200DegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if got := Fetch(fetcher.NewFetcher(), server.URL, "/get-started/", testExcluded, discardLogger()); len(got) != 0 {
		t.Errorf("Fetch() on 503 = %v, want empty", got)
	}
}

func TestFetchUnreachableDegradesToEmpty(t *testing.T) {
	// Closed server: the request itself fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if got := Fetch(fetcher.NewFetcher(), url, "/get-started/", testExcluded, discardLogger()); len(got) != 0 {
		t.Errorf("Fetch() on dead server = %v, want empty", got)
	}
}
