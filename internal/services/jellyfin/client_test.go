package jellyfin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/config"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client, err := NewClient(&config.Config{
		JellyfinURL:   baseURL,
		JellyfinToken: "test-token",
	}, logger)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	if _, err := NewClient(&config.Config{JellyfinToken: "t"}, logger); err == nil {
		t.Error("Expected error without URL")
	}
	if _, err := NewClient(&config.Config{JellyfinURL: "http://jf.lan"}, logger); err == nil {
		t.Error("Expected error without token")
	}
}

func TestSearchItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Items" {
			t.Errorf("Path mismatch: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Emby-Token"); got != "test-token" {
			t.Errorf("Token header mismatch: %q", got)
		}
		q := r.URL.Query()
		if got := q.Get("searchTerm"); got != "the thing" {
			t.Errorf("Search term mismatch: %q", got)
		}
		if got := q.Get("IncludeItemTypes"); got != "Movie,Series,Episode" {
			t.Errorf("Item types mismatch: %q", got)
		}
		if got := q.Get("Limit"); got != "10" {
			t.Errorf("Limit mismatch: %q", got)
		}

		w.Write([]byte(`{
			"Items": [
				{
					"Id": "f27caa37e5142225cceded48f6553502",
					"Name": "The Thing",
					"Type": "Movie",
					"Overview": "Researchers in Antarctica",
					"ProductionYear": 1982,
					"UserData": {"PlaybackPositionTicks": 12000000000}
				}
			],
			"TotalRecordCount": 1
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	items, err := client.SearchItems(context.Background(), "the thing", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.ID != "f27caa37e5142225cceded48f6553502" || item.Name != "The Thing" {
		t.Errorf("Item mismatch: %+v", item)
	}
	if item.ResumeSeconds() != 1200 {
		t.Errorf("Expected 1200 resume seconds, got %d", item.ResumeSeconds())
	}
}

func TestSearchItemsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, err := client.SearchItems(context.Background(), "anything", 5); err == nil {
		t.Fatal("Expected error on non-200 status")
	}
}

func TestImageURL(t *testing.T) {
	client := newTestClient(t, "http://jf.lan:8096/")

	// Trailing slash on the base URL must not double up
	want := "http://jf.lan:8096/Items/abc123/Images/Primary"
	if got := client.ImageURL("abc123"); got != want {
		t.Errorf("Image URL mismatch:\ngot  %s\nwant %s", got, want)
	}
}
