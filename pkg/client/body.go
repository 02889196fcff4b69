package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// emptyValue is the decoded value of a 204 or an empty JSON body.
var emptyValue = json.RawMessage("null")

// pdfEnvelope wraps a PDF body that arrived on the JSON path.
type pdfEnvelope struct {
	PDF string `json:"pdf"`
}

// messageEnvelope wraps a body that is neither JSON nor PDF.
type messageEnvelope struct {
	Message string `json:"message"`
}

// readBody reads and decodes a response body by Content-Type.
//
//	application/json -> the JSON document itself
//	application/pdf  -> {"pdf": "<base64>"}
//	anything else    -> {"message": "<text>"}
//
// A JSON body that does not parse is an error on a 2xx response. For error
// responses the raw text is wrapped in a message envelope instead, so an
// error message can always be extracted.
func readBody(resp *http.Response) (json.RawMessage, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseBody(resp.Header.Get("Content-Type"), data, resp.StatusCode < 400)
}

func parseBody(contentType string, data []byte, success bool) (json.RawMessage, error) {
	switch {
	case strings.Contains(contentType, "application/json"):
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			return emptyValue, nil
		}
		if json.Valid(trimmed) {
			return json.RawMessage(trimmed), nil
		}
		if success {
			return nil, &NetworkError{
				Message: "invalid JSON response body",
				Cause:   fmt.Errorf("decode %d bytes as JSON", len(trimmed)),
			}
		}
		return json.Marshal(messageEnvelope{Message: string(data)})

	case strings.Contains(contentType, "application/pdf"):
		return json.Marshal(pdfEnvelope{PDF: base64.StdEncoding.EncodeToString(data)})

	default:
		return json.Marshal(messageEnvelope{Message: string(data)})
	}
}
