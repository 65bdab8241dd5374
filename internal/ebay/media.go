package ebay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
)

// maxImageBytes is the Media API upload ceiling.
const maxImageBytes = 12 << 20

// UploadImage uploads a local image file through the Media API and returns
// the hosted image. The create call answers with a Location header that is
// then fetched for the durable imageUrl.
func (c *Client) UploadImage(ctx context.Context, auth Auth, path string) (*Image, error) {
	cfg, err := c.env(auth.Environment)
	if err != nil {
		return nil, err
	}

	body, contentType, err := imageForm(path)
	if err != nil {
		return nil, err
	}

	createURL := strings.TrimRight(cfg.MediaURL, "/") + "/image/create_image_from_file"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, createURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating image upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	req.Header.Set("Content-Type", contentType)

	_, header, err := c.send(ctx, "media_create_image", req)
	if err != nil {
		return nil, fmt.Errorf("uploading image %s: %w", filepath.Base(path), err)
	}

	location := header.Get("Location")
	if location == "" {
		return nil, fmt.Errorf("uploading image %s: response has no Location header", filepath.Base(path))
	}

	var img Image
	if _, err := c.sendJSON(ctx, "media_get_image", http.MethodGet, location, auth, nil, &img); err != nil {
		return nil, fmt.Errorf("fetching uploaded image %s: %w", filepath.Base(path), err)
	}
	if img.ImageURL == "" {
		return nil, fmt.Errorf("fetching uploaded image %s: response has no imageUrl", filepath.Base(path))
	}

	return &img, nil
}

// imageForm reads path into a multipart body with a single "image" part.
func imageForm(path string) (io.Reader, string, error) {
	f, err := os.Open(path) //nolint:gosec // image paths come from the caller's request
	if err != nil {
		return nil, "", apperror.Validation("image_refs", fmt.Sprintf("opening image %s: %v", path, err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("reading image %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, "", apperror.Validation("image_refs", fmt.Sprintf("image %s is empty", path))
	}
	if info.Size() > maxImageBytes {
		return nil, "", apperror.Validation("image_refs", fmt.Sprintf("image %s exceeds %d bytes", path, maxImageBytes))
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("reading image %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
