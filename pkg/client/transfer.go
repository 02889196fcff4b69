package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// DefaultMimeType is reported for downloads without a Content-Type.
const DefaultMimeType = "application/octet-stream"

// File is a downloaded binary payload.
type File struct {
	Content  []byte
	MimeType string
}

// UploadResult is the acknowledgment of an upload.
type UploadResult struct {
	ID int64 `json:"id"`
}

// Download fetches raw bytes from path, skipping JSON decoding.
// Used for invoice PDFs and attachments.
func (c *Client) Download(ctx context.Context, path string) (*File, error) {
	logger := c.requestLogger(http.MethodGet, path)
	logger.Debug().Msg("Downloading file")

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(AuthHeader, c.config.APIToken)

	resp, err := c.roundTrip(ctx, req, resource(path), logger)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := transportError(ctx, err)
		c.recordFailure(logger, resource(path), netErr)
		return nil, netErr
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	logger.Debug().
		Int("bytes", len(content)).
		Str("mime_type", mimeType).
		Msg("File downloaded")

	return &File{Content: content, MimeType: mimeType}, nil
}

// Upload sends content as the multipart field "file" and returns the
// created attachment ID.
func (c *Client) Upload(ctx context.Context, path string, content []byte, filename, mimeType string) (*UploadResult, error) {
	logger := c.requestLogger(http.MethodPost, path)
	logger.Debug().
		Str("filename", filename).
		Str("mime_type", mimeType).
		Int("bytes", len(content)).
		Msg("Uploading file")

	body, contentType, err := multipartBody(content, filename, mimeType)
	if err != nil {
		return nil, fmt.Errorf("encode multipart body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(AuthHeader, c.config.APIToken)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.roundTrip(ctx, req, resource(path), logger)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := transportError(ctx, err)
		c.recordFailure(logger, resource(path), netErr)
		return nil, netErr
	}

	var result UploadResult
	if err := json.Unmarshal(data, &result); err != nil {
		netErr := &NetworkError{Message: "invalid JSON response body", Cause: err}
		c.recordFailure(logger, resource(path), netErr)
		return nil, netErr
	}

	logger.Debug().Int64("id", result.ID).Msg("File uploaded")
	return &result, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartBody(content []byte, filename, mimeType string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	// CreateFormFile always declares application/octet-stream, so the part
	// header is written by hand to carry the real type.
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", mimeType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
