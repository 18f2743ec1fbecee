package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Simplici0/paintpro/pkg/logging"
)

const nominatimBody = `[
  {"place_id": 1, "display_name": "123 Pine St, Seattle", "lat": "47.6", "lon": "-122.3",
   "address": {"house_number": "123", "road": "Pine St", "city": "Seattle", "state": "Washington", "postcode": "98101"}},
  {"place_id": 2, "display_name": "123 Pine St, Portland", "lat": "45.5", "lon": "-122.6",
   "address": {"house_number": "123", "road": "Pine St", "city": "Portland", "state": "Oregon", "postcode": "97201"}}
]`

func TestSuggestSendsNominatimParamsAndFiltersRegion(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(nominatimBody))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, srv.Client(), logging.Discard())
	res, err := c.Suggest(context.Background(), "client-1", "123 Pine")
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if res.Degraded {
		t.Fatalf("unexpected degraded result")
	}
	if len(res.Suggestions) != 1 {
		t.Fatalf("expected only the Washington result, got %+v", res.Suggestions)
	}
	if got := res.Suggestions[0].Label; got != "123 Pine St, Seattle, Washington, 98101" {
		t.Fatalf("unexpected label %q", got)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("unexpected user agent %q", gotUA)
	}
	for _, want := range []string{"q=123+Pine", "format=json", "addressdetails=1", "limit=5", "countrycodes=us", "state=washington"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestSuggestShortQuerySkipsRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, srv.Client(), logging.Discard())
	res, err := c.Suggest(context.Background(), "", " ab ")
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if res.Suggestions == nil || len(res.Suggestions) != 0 || res.Degraded {
		t.Fatalf("unexpected result: %+v", res)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("short query should not reach the geocoder")
	}
}

func TestSuggestFailureIsDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, srv.Client(), logging.Discard())
	res, err := c.Suggest(context.Background(), "client-1", "123 Pine")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !res.Degraded || len(res.Suggestions) != 0 {
		t.Fatalf("expected degraded empty result, got %+v", res)
	}
}

func TestSuggestCancelsSupersededLookup(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		if r.URL.Query().Get("q") == "first query" {
			select {
			case <-r.Context().Done():
			case <-release:
			}
			return
		}
		_, _ = w.Write([]byte(nominatimBody))
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{URL: srv.URL}, srv.Client(), logging.Discard())

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Suggest(context.Background(), "client-1", "first query")
		firstErr <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatalf("first lookup never reached the server")
	}

	res, err := c.Suggest(context.Background(), "client-1", "second query")
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if len(res.Suggestions) != 1 {
		t.Fatalf("unexpected second result: %+v", res)
	}

	select {
	case err := <-firstErr:
		if !errors.Is(err, ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded for first lookup, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("first lookup was not cancelled")
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name string
		in   Address
		want string
	}{
		{"full", Address{HouseNumber: "1", Road: "Main St", City: "Tacoma", State: "Washington", Postcode: "98402"}, "1 Main St, Tacoma, Washington, 98402"},
		{"no house number", Address{Road: "Main St", City: "Tacoma", State: "Washington"}, "Main St, Tacoma, Washington"},
		{"city only", Address{City: "Spokane"}, "Spokane"},
		{"empty", Address{}, ""},
	}
	for _, tc := range tests {
		if got := FormatAddress(tc.in); got != tc.want {
			t.Fatalf("%s: FormatAddress = %q, want %q", tc.name, got, tc.want)
		}
	}
}
