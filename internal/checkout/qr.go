package checkout

import (
	"encoding/base64"
	"log/slog"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Hunter28-lucky/Ecom-stores/internal/zapupi"
)

const qrPixelSize = 512

var dataImagePrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// BuildQRImage turns a successful create-order result into a displayable
// data URI. Candidates are tried in priority order: the normalized payment
// string, the raw payment_data, then the payment page URL. It never fails;
// when nothing is renderable it returns "" and the page shows a preparing
// placeholder instead.
func BuildQRImage(res zapupi.CreateOrderResult) string {
	raw := strings.TrimSpace(res.PaymentData)
	decoded := ""
	if raw != "" {
		decoded = zapupi.NormalizePayload(raw)
	}
	pageURL := strings.TrimSpace(res.PaymentURL)

	// The gateway occasionally returns the QR bitmap itself.
	if isLikelyBase64(raw) {
		if strings.HasPrefix(raw, "data:image") {
			return raw
		}
		return "data:image/png;base64," + stripDataPrefix(raw)
	}

	primary := firstNonEmpty(decoded, raw, pageURL)
	if primary == "" {
		return ""
	}

	png, err := qrcode.Encode(primary, qrcode.Medium, qrPixelSize)
	if err != nil {
		slog.Error("QR generation failed", "error", err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// UPILink returns the upi:// deep link for the result, or "" when the
// payload is not a deep link.
func UPILink(res zapupi.CreateOrderResult) string {
	decoded := zapupi.NormalizePayload(res.PaymentData)
	if zapupi.ClassifyPayload(decoded) == zapupi.PayloadUPILink {
		return decoded
	}
	return ""
}

// isLikelyBase64 checks by round-trip: decode, re-encode, compare ignoring
// padding. Catches both bare base64 and data:image URIs.
func isLikelyBase64(value string) bool {
	stripped := stripDataPrefix(value)
	if stripped == "" {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return false
	}
	reencoded := base64.StdEncoding.EncodeToString(decoded)
	return strings.TrimRight(reencoded, "=") == strings.TrimRight(stripped, "=")
}

func stripDataPrefix(value string) string {
	return strings.TrimSpace(dataImagePrefix.ReplaceAllString(strings.TrimSpace(value), ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
