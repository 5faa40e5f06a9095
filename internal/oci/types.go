package oci

import (
	"net/http"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// Tags is the normalized tag envelope shared by all resource shapes.
type Tags struct {
	Freeform map[string]string                 `json:"freeform"`
	Defined  map[string]map[string]interface{} `json:"defined"`
}

// NormalizeTags never returns nil maps so listings serialize as {} rather
// than null.
func NormalizeTags(freeform map[string]string, defined map[string]map[string]interface{}) Tags {
	if freeform == nil {
		freeform = map[string]string{}
	}
	if defined == nil {
		defined = map[string]map[string]interface{}{}
	}
	return Tags{Freeform: freeform, Defined: defined}
}

// StringValue dereferences an optional SDK string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IntValue dereferences an optional SDK int.
func IntValue(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// BoolValue dereferences an optional SDK bool.
func BoolValue(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

// FormatSDKTime renders an SDK timestamp as UTC RFC 3339, or empty when the
// vendor omitted it.
func FormatSDKTime(t *common.SDKTime) string {
	if t == nil {
		return ""
	}
	return t.Time.UTC().Format(time.RFC3339)
}

// WorkRequestID extracts the asynchronous work-request handle from a raw
// vendor response. Some compute responses only surface it as a header.
func WorkRequestID(raw *http.Response) string {
	if raw == nil {
		return ""
	}
	return raw.Header.Get("opc-work-request-id")
}
