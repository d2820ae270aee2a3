package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactdesk/internal/upstream"
	"github.com/goliatone/go-contactdesk/pkg/testsupport"
)

type item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func TestFetchJSON_DecodesBody(t *testing.T) {
	server := testsupport.NewUpstream(t, testsupport.Response{
		Body: []item{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}},
	})

	var got []item
	if err := upstream.New().FetchJSON(context.Background(), server.URL("/posts?_limit=10"), &got); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	want := []item{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"_limit=10"}, server.Queries()); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchJSON_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		server := testsupport.NewUpstream(t, testsupport.Response{Status: status, Body: []item{{ID: 1}}})

		var got []item
		err := upstream.New().FetchJSON(context.Background(), server.URL("/posts"), &got)
		if !errors.Is(err, upstream.ErrStatus) {
			t.Fatalf("status %d: expected ErrStatus, got %v", status, err)
		}
		if code := upstream.StatusOf(err); code != status {
			t.Fatalf("expected status %d on error, got %d", status, code)
		}
		if got != nil {
			t.Fatalf("expected no decode on status %d, got %#v", status, got)
		}
		if server.Hits() != 1 {
			t.Fatalf("expected a single attempt, got %d", server.Hits())
		}
	}
}

func TestFetchJSON_RetriesWhenConfigured(t *testing.T) {
	server := testsupport.NewUpstream(t,
		testsupport.Response{Status: http.StatusServiceUnavailable},
		testsupport.Response{Body: []item{{ID: 7}}},
	)

	var got []item
	client := upstream.New(upstream.WithRetryMax(1), upstream.WithRetryWait(time.Millisecond, 2*time.Millisecond))
	if err := client.FetchJSON(context.Background(), server.URL("/users"), &got); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("unexpected items: %#v", got)
	}
	if server.Hits() != 2 {
		t.Fatalf("expected 2 attempts, got %d", server.Hits())
	}
}

func TestFetchJSON_DecodeFailure(t *testing.T) {
	server := testsupport.NewUpstream(t, testsupport.Response{Raw: "<html>oops</html>"})

	var got []item
	err := upstream.New().FetchJSON(context.Background(), server.URL("/posts"), &got)
	if !errors.Is(err, upstream.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	var loadErr *upstream.LoadError
	if !errors.As(err, &loadErr) || loadErr.URL != server.URL("/posts") {
		t.Fatalf("expected LoadError with url, got %#v", err)
	}
}

func TestFetchJSON_TransportFailure(t *testing.T) {
	var got []item
	err := upstream.New().FetchJSON(context.Background(), "http://127.0.0.1:1/unreachable", &got)
	var loadErr *upstream.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.StatusCode != 0 {
		t.Fatalf("expected no status on transport failure, got %d", loadErr.StatusCode)
	}
}

func TestFetchJSON_MissingURL(t *testing.T) {
	err := upstream.New().FetchJSON(context.Background(), " ", &[]item{})
	if !errors.Is(err, upstream.ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
}
