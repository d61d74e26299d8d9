package locator_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"photoMarketplace/internal/locator"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		native string
		req    *locator.Request
		want   string
	}{
		{
			name:   "local path with request context",
			native: "/media/photos/x.jpg",
			req:    &locator.Request{Scheme: "https", Host: "example.com"},
			want:   "https://example.com/media/photos/x.jpg",
		},
		{
			name:   "local path without request context",
			native: "/media/photos/x.jpg",
			req:    nil,
			want:   "/media/photos/x.jpg",
		},
		{
			name:   "absolute object store URL stays unchanged",
			native: "https://bucket.s3.amazonaws.com/photos/x.jpg",
			req:    &locator.Request{Scheme: "https", Host: "example.com"},
			want:   "https://bucket.s3.amazonaws.com/photos/x.jpg",
		},
		{
			name:   "absolute URL without request context",
			native: "https://bucket.s3.amazonaws.com/photos/x.jpg",
			req:    nil,
			want:   "https://bucket.s3.amazonaws.com/photos/x.jpg",
		},
		{
			name:   "ambiguous form returned raw",
			native: "media/photos/x.jpg",
			req:    &locator.Request{Scheme: "https", Host: "example.com"},
			want:   "media/photos/x.jpg",
		},
		{
			name:   "empty reference",
			native: "",
			req:    &locator.Request{Scheme: "https", Host: "example.com"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, locator.Resolve(tt.native, tt.req))
		})
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/gallery", nil)

	req := locator.FromRequest(r)
	require.Equal(t, "http", req.Scheme)
	require.Equal(t, "example.com", req.Host)

	r.Header.Set("X-Forwarded-Proto", "https")
	req = locator.FromRequest(r)
	require.Equal(t, "https", req.Scheme)
}
