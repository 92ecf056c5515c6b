// Package httpx provides helpers for HTTP responses and request bodies.
package httpx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// ErrNoFile is returned when the multipart body carries no usable file part.
var ErrNoFile = errors.New("no file in request")

// JSON creates a JSON HTTP response with the given status code and value.
func JSON(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	b, _ := json.Marshal(v)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(b),
	}, nil
}

// Error creates a JSON HTTP error response with the given status code and message.
func Error(status int, msg string) (events.APIGatewayV2HTTPResponse, error) {
	return JSON(status, map[string]string{"error": msg})
}

// Binary creates a base64-encoded binary response, used to serve workbooks.
func Binary(status int, contentType, filename string, data []byte) (events.APIGatewayV2HTTPResponse, error) {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":        contentType,
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
		},
		Body:            base64.StdEncoding.EncodeToString(data),
		IsBase64Encoded: true,
	}, nil
}

// FilePart extracts the named file part from a multipart request body and
// returns its bytes and original filename. maxBytes caps the part size.
func FilePart(req events.APIGatewayV2HTTPRequest, field string, maxBytes int64) ([]byte, string, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("decode body: %w", err)
		}
		body = decoded
	}

	ct := header(req.Headers, "Content-Type")
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, "", errors.New("expected multipart/form-data body")
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, "", errors.New("multipart body missing boundary")
	}

	mr := multipart.NewReader(strings.NewReader(string(body)), boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("read multipart: %w", err)
		}
		if part.FormName() != field {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(part, maxBytes+1))
		if err != nil {
			return nil, "", fmt.Errorf("read file part: %w", err)
		}
		if int64(len(data)) > maxBytes {
			return nil, "", fmt.Errorf("file exceeds %d bytes", maxBytes)
		}
		if len(data) == 0 {
			return nil, "", ErrNoFile
		}
		return data, part.FileName(), nil
	}
	return nil, "", ErrNoFile
}

// header returns a header value, case-insensitively.
func header(h map[string]string, key string) string {
	lk := strings.ToLower(key)
	for k, v := range h {
		if strings.ToLower(k) == lk {
			return v
		}
	}
	return ""
}
