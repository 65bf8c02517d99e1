package zapupi

import (
	"net/url"
	"strings"
)

// PayloadKind classifies what the gateway handed back in payment_data.
type PayloadKind int

const (
	PayloadOpaque PayloadKind = iota
	PayloadUPILink
	PayloadHTTPURL
	PayloadBase64Image
)

// maxDecodeRounds caps percent-decoding. The gateway's encoding depth varies
// between one and two levels; an unbounded loop could spin on malformed input.
const maxDecodeRounds = 2

// NormalizePayload undoes the gateway's inconsistent percent-encoding of
// payment_data. A string already carrying a recognized scheme is returned
// as-is, so the function is idempotent on its own output. When no recognized
// scheme emerges within maxDecodeRounds the most-decoded form is returned and
// callers must treat it as opaque.
func NormalizePayload(raw string) string {
	current := strings.TrimSpace(raw)
	if current == "" {
		return ""
	}
	if hasRecognizedScheme(current) {
		return current
	}

	for i := 0; i < maxDecodeRounds; i++ {
		decoded, err := url.PathUnescape(current)
		if err != nil || decoded == current {
			break
		}
		current = strings.TrimSpace(decoded)
		if hasRecognizedScheme(current) {
			return current
		}
	}

	return current
}

// ClassifyPayload reports the kind of a normalized payment string.
func ClassifyPayload(s string) PayloadKind {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(lower, "upi://"):
		return PayloadUPILink
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return PayloadHTTPURL
	case strings.HasPrefix(lower, "data:image"):
		return PayloadBase64Image
	default:
		return PayloadOpaque
	}
}

func hasRecognizedScheme(s string) bool {
	return ClassifyPayload(s) != PayloadOpaque
}
