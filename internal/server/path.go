package server

import (
	stdhttp "net/http"
	"path"
)

// normalizePath rewrites unclean request paths before the router sees them.
// gorilla/mux answers an unclean path with a 301 to its cleaned form; the
// greeting listener must answer every path with the greeting instead.
func normalizePath(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		p := cleanPath(r.URL.Path)
		if p == r.URL.Path && r.URL.RawPath == "" {
			next.ServeHTTP(w, r)
			return
		}
		r2 := new(stdhttp.Request)
		*r2 = *r
		u := *r.URL
		u.Path = p
		u.RawPath = ""
		r2.URL = &u
		next.ServeHTTP(w, r2)
	})
}

// cleanPath mirrors the canonicalization mux applies to request paths.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}
