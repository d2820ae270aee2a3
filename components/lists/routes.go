package lists

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for a route under basePath.
func MountPath(basePath, routePath string) string {
	return mountPath(basePath, routePath)
}

// RegisterRoutes mounts the component handler under basePath and returns the
// mount path. Both the bare path and its subtree are registered.
func (c *Component[T]) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("lists: missing mux")
	}
	pattern := mountPath(basePath, c.opts.RoutePath)

	c.mu.Lock()
	c.mount = pattern
	c.mu.Unlock()

	handler := c.Handler()
	mux.Handle(pattern, handler)
	mux.Handle(pattern+"/", handler)
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")
	if routePath == "" {
		routePath = "/"
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if routePath == "/" {
		return basePath
	}
	return basePath + routePath
}
