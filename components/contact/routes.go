package contact

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-contactform/pkg/renderers/html"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the section route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// AssetPath returns the URL of a bundled asset under basePath.
func AssetPath(basePath, name string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.AssetsPath) + "/" + strings.TrimPrefix(name, "/")
}

// RegisterRoutes registers the contact handler and its assets under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a
// pre-built Options value. Each bundled asset gets its own exact route so the
// same patterns work on ServeMux and chi.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("contact: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	assetsBase := mountPath(basePath, opts.AssetsPath)
	if opts.ScriptURL == "" {
		opts.ScriptURL = assetsBase + "/" + html.RuntimeScriptName
	}
	for _, name := range []string{html.StylesheetName, html.RuntimeScriptName} {
		mux.Handle(assetsBase+"/"+name, assetHandler(name))
	}

	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

func assetHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		http.ServeFileFS(w, r, html.AssetsFS(), name)
	})
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

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
