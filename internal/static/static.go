package static

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// entryDocument is served for the bare "/" path.
	entryDocument = "index.html"
	// assetsDir is the fallback subdirectory tried when a path
	// does not resolve directly under the root.
	assetsDir = "assets"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".json": "application/json",
	".ico":  "image/x-icon",
}

// Handler serves files from a fixed site root directory.
// Every resolved path must stay inside the root; anything that
// escapes is answered like a missing file.
type Handler struct {
	root string
}

// NewHandler builds a Handler rooted at dir.
func NewHandler(dir string) (*Handler, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid site root '%s': %w", dir, err)
	}
	// Canonicalize once so candidate paths compare against the
	// symlink-free form of the root.
	if canon, err := filepath.EvalSymlinks(root); err == nil {
		root = canon
	}
	return &Handler{root: root}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqPath, err := url.PathUnescape(r.URL.EscapedPath())
	if err != nil {
		notFound(w)
		return
	}
	if reqPath == "" || reqPath == "/" {
		reqPath = "/" + entryDocument
	}

	full, ok := h.resolve(reqPath)
	if !ok {
		full, ok = h.resolve(path.Join("/", assetsDir, reqPath))
	}
	if !ok {
		notFound(w)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		notFound(w)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", typeByExtension(full))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		// Headers are already out; the connection just ends early.
		log.Printf("static: streaming %s: %v", reqPath, err)
	}
}

// resolve maps a slash-separated request path to an absolute file path
// under the root. Cleaning the rooted path strips any leading ".."
// run; the containment check is the security invariant and applies to
// both the direct and the assets attempt.
func (h *Handler) resolve(reqPath string) (string, bool) {
	clean := path.Clean("/" + reqPath)
	full := filepath.Join(h.root, filepath.FromSlash(clean))
	if !h.contains(full) {
		return "", false
	}
	// A symlink inside the root may still point outside it, so the
	// check must also hold for the canonical form.
	canon, err := filepath.EvalSymlinks(full)
	if err != nil || !h.contains(canon) {
		return "", false
	}
	info, err := os.Stat(canon)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return canon, true
}

func (h *Handler) contains(p string) bool {
	return p == h.root || strings.HasPrefix(p, h.root+string(os.PathSeparator))
}

func typeByExtension(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func notFound(w http.ResponseWriter) {
	http.Error(w, "Not found", http.StatusNotFound)
}
