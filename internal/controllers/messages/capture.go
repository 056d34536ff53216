package messages

import (
	"encoding/base64"
	"encoding/json"
	"mime"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const rawEncodingBase64 = "base64"

// Capture is the normalized form of an inbound webhook request as it is stored in the log.
type Capture struct {
	// Headers maps each request header to its value; repeated headers are joined with ", ".
	Headers map[string]string `json:"headers"`
	// JSON is the decoded body, or nil when the body is not declared or not valid JSON.
	JSON any `json:"json"`
	// Args holds the query parameters.
	Args map[string]string `json:"args"`
	// Form holds urlencoded or multipart form fields.
	Form map[string]string `json:"form"`
	// RawData is the body as received, or nil when the body is empty.
	RawData *string `json:"raw_data"`
	// RawDataEncoding is "base64" when the body is not valid UTF-8 and RawData holds its base64 form.
	RawDataEncoding string `json:"raw_data_encoding,omitempty"`
	// Timestamp is when the request was captured.
	Timestamp string `json:"timestamp"`
	// Method is the HTTP method of the request.
	Method string `json:"method"`
}

// captureRequest copies everything needed out of c. Values returned by fiber
// are only valid inside the handler, so every string is copied.
func captureRequest(c *fiber.Ctx, now time.Time) Capture {
	headers := make(map[string]string)
	for key, values := range c.GetReqHeaders() {
		headers[utils.CopyString(key)] = utils.CopyString(strings.Join(values, ", "))
	}

	args := make(map[string]string)
	for key, value := range c.Queries() {
		args[utils.CopyString(key)] = utils.CopyString(value)
	}

	body := c.Body()
	contentType := c.Get(fiber.HeaderContentType)

	var decoded any
	if len(body) > 0 && isJSONContentType(contentType) {
		if err := json.Unmarshal(body, &decoded); err != nil {
			decoded = nil
		}
	}

	raw, rawEncoding := captureRaw(body)

	return Capture{
		Headers:         headers,
		JSON:            decoded,
		Args:            args,
		Form:            captureForm(c, contentType),
		RawData:         raw,
		RawDataEncoding: rawEncoding,
		Timestamp:       now.UTC().Format(time.RFC3339Nano),
		Method:          utils.CopyString(c.Method()),
	}
}

// captureRaw returns the body as a string. JSON strings can only carry UTF-8,
// so any other body is base64 encoded to keep its bytes intact.
func captureRaw(body []byte) (*string, string) {
	if len(body) == 0 {
		return nil, ""
	}
	if utf8.Valid(body) {
		s := string(body)
		return &s, ""
	}
	s := base64.StdEncoding.EncodeToString(body)
	return &s, rawEncodingBase64
}

func captureForm(c *fiber.Ctx, contentType string) map[string]string {
	form := make(map[string]string)
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return form
	}

	switch mediaType {
	case fiber.MIMEApplicationForm:
		// ParseQuery keeps every pair it could decode even when it reports an error.
		values, _ := url.ParseQuery(string(c.Body()))
		for key, vals := range values {
			if len(vals) > 0 {
				form[key] = vals[0]
			}
		}
	case fiber.MIMEMultipartForm:
		mf, err := c.MultipartForm()
		if err != nil {
			return form
		}
		for key, vals := range mf.Value {
			if len(vals) > 0 {
				form[utils.CopyString(key)] = utils.CopyString(vals[0])
			}
		}
	}
	return form
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if mediaType == fiber.MIMEApplicationJSON {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}
