package locator

import (
	"net/http"
	"net/url"
	"strings"
)

// Request carries the parts of an incoming request needed to build an
// absolute URL for a server-local media path.
type Request struct {
	Scheme string
	Host   string
}

func FromRequest(r *http.Request) *Request {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return &Request{Scheme: scheme, Host: r.Host}
}

// Resolve turns a stored-file reference's native URL form into a callable
// URL. Object-store references are already absolute and are returned
// unchanged; server-local paths are only resolvable relative to the serving
// host and get the request's scheme+host prefixed. A reference that is
// neither is returned raw and left to the caller.
func Resolve(native string, req *Request) string {
	if native == "" {
		return ""
	}

	if u, err := url.Parse(native); err == nil && u.IsAbs() && u.Host != "" {
		return native
	}

	if strings.HasPrefix(native, "/") {
		if req == nil {
			return native
		}
		return req.Scheme + "://" + req.Host + native
	}

	return native
}
