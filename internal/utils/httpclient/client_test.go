package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"BoatraceAPI/internal/config"

	"github.com/sirupsen/logrus"
)

func TestNewHTTPClient_DecompressesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Encoding") != "gzip" {
			t.Errorf("Accept-Encoding = %q", r.Header.Get("Accept-Encoding"))
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"ok":true}`))
		_ = gz.Close()
	}))
	defer srv.Close()

	client := NewHTTPClient(&config.ScraperConfig{Timeout: 5}, logrus.New())
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %s", body)
	}
	if resp.Header.Get("Content-Encoding") != "" {
		t.Errorf("Content-Encoding should be removed, got %q", resp.Header.Get("Content-Encoding"))
	}
}

func TestNewHTTPClient_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	}))
	defer srv.Close()

	client := NewHTTPClient(&config.ScraperConfig{Timeout: 5, Proxy: "://bad proxy"}, logrus.New())
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "plain" {
		t.Errorf("body = %s", body)
	}
}
