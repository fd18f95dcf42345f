package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/smartbite/internal/domain"
)

const maxPhotoSize = 50 * 1024 * 1024 // 50 MB

var errUploadTooLarge = fmt.Errorf("attachment exceeds %d bytes", maxPhotoSize)

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// firstImage decodes every attachment and stores the first accepted image
// under the session's prefix. Attachments that are not images are skipped.
// An error is returned only for a malformed attachment. The declared MIME
// type is replaced by the sniffed one. It returns nil when there is no image.
func (s *Server) firstImage(ctx context.Context, sessionID string, uploads []uploadElement) (*domain.Element, error) {
	var (
		found    *uploadElement
		image    []byte
		mimeType string
	)
	for i, up := range uploads {
		data, err := decodeUpload(up)
		if err != nil {
			return nil, fmt.Errorf("attachment %q: %w", up.Name, err)
		}
		if found != nil {
			continue
		}
		mt, ok := allowedImageMIME(data)
		if !ok {
			s.logger.Info("ignoring non-image attachment", "session_id", sessionID, "name", up.Name, "declared_mime", up.Mime)
			continue
		}
		found, image, mimeType = &uploads[i], data, mt
	}
	if found == nil {
		return nil, nil
	}

	key, err := s.photoStore.Save(ctx, sessionID, mimeType, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	s.logger.Info("upload stored", "session_id", sessionID, "key", key, "mime_type", mimeType, "bytes", len(image))

	return &domain.Element{Name: found.Name, Mime: mimeType, Path: key}, nil
}

func decodeUpload(up uploadElement) ([]byte, error) {
	if base64.StdEncoding.DecodedLen(len(up.Data)) > maxPhotoSize+3 {
		return nil, errUploadTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(up.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid attachment encoding: %w", err)
	}
	if len(data) > maxPhotoSize {
		return nil, errUploadTooLarge
	}
	return data, nil
}

func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	reader, mimeType, err := s.photoStore.Get(r.Context(), key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "upload reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write upload failed", "key", key, "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
