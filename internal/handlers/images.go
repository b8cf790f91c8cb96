package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ImageRoutePrefix is the URL prefix the image handler is mounted under.
const ImageRoutePrefix = "/api/image/"

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".avif": "image/avif",
}

// Image streams a card image from the configured images root. Any request
// that resolves outside the root is rejected before touching the
// filesystem.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, ImageRoutePrefix)

	root, err := filepath.Abs(h.cfg.ImagesDir)
	if err != nil {
		h.jsonError(w, "Image unavailable.", http.StatusInternalServerError)
		return
	}
	resolved, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil || !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		h.logger.Warn("image path escapes root", zap.String("path", rel))
		h.jsonError(w, "Invalid image path.", http.StatusBadRequest)
		return
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		h.jsonError(w, "Image not found.", http.StatusNotFound)
		return
	}

	f, err := os.Open(resolved)
	if err != nil {
		h.jsonError(w, "Image not found.", http.StatusNotFound)
		return
	}
	defer f.Close()

	contentType := imageContentTypes[strings.ToLower(filepath.Ext(resolved))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("image stream interrupted", zap.Error(err))
	}
}
