// Package ocr defines the contract for the external text extraction
// service and an HTTP client for it. The OCR engine itself is a
// collaborator outside this backend.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrExtraction is returned whenever the OCR service cannot produce
// text for an image. Callers surface it as a generic "try a clearer
// image" failure and must not create any partial state.
var ErrExtraction = errors.New("no text could be extracted from the image")

// TextExtractor extracts free text from an uploaded image.
type TextExtractor interface {
	Extract(ctx context.Context, image io.Reader, filename string) (string, error)
}

// Client calls an OCR service over HTTP. The image is posted as a
// multipart form, the response body is the extracted text.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// NewClient returns a client for the OCR service at url.
func NewClient(url string) *Client {
	return &Client{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Extract(ctx context.Context, image io.Reader, filename string) (string, error) {
	var body bytes.Buffer

	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	_, err = io.Copy(part, image)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	err = writer.Close()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: the OCR service responded with status %d", ErrExtraction, resp.StatusCode)
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if len(bytes.TrimSpace(text)) == 0 {
		return "", ErrExtraction
	}

	return string(text), nil
}
