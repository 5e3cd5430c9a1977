package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mangaist/internal/storage"
)

var errNotAnImage = errors.New("uploaded file is not an image")

// maxUploadSize caps every image upload at 10 MiB.
const maxUploadSize = 10 << 20

// saveImage reads the named multipart file part, verifies it is an image by
// sniffing the first 512 bytes, stores it under "<kind>/<uuid><ext>" and
// returns the public URL.
func saveImage(ctx context.Context, media *storage.MediaStore, header *multipart.FileHeader, kind string) (string, error) {
	if header.Size > maxUploadSize {
		return "", errors.New("file too large")
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Content type comes from the bytes, not the client-supplied header
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && n == 0 {
		return "", err
	}
	mimeType := http.DetectContentType(buf[:n])
	if !strings.HasPrefix(mimeType, "image/") {
		return "", errNotAnImage
	}

	if _, err := file.Seek(0, 0); err != nil {
		return "", err
	}

	ext := filepath.Ext(header.Filename)
	key := kind + "/" + uuid.New().String() + ext

	return media.Upload(ctx, key, file, header.Size, mimeType)
}

// formImage fetches an image file part from the request. Returns nil without
// error when the part is absent, so callers can treat the image as optional.
func formImage(c *gin.Context, field string) (*multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return header, nil
}

// deleteByURL best-effort removes a stored object given its public URL.
// Foreign URLs and already-gone objects are ignored.
func deleteByURL(ctx context.Context, media *storage.MediaStore, url string) {
	if url == "" || media == nil {
		return
	}
	if key, ok := media.KeyFromURL(url); ok {
		_ = media.Delete(ctx, key)
	}
}
