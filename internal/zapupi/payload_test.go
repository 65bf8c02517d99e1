package zapupi

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePayloadRecognizedSchemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"upi deep link untouched", "upi://pay?pa=x@y&am=199", "upi://pay?pa=x@y&am=199"},
		{"https url untouched", "https://pay.example.com/o/1", "https://pay.example.com/o/1"},
		{"http url untouched", "http://pay.example.com/o/1", "http://pay.example.com/o/1"},
		{"data uri untouched", "data:image/png;base64,iVBOR", "data:image/png;base64,iVBOR"},
		{"surrounding whitespace trimmed", "  upi://pay?pa=x@y  ", "upi://pay?pa=x@y"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePayload(tt.input))
		})
	}
}

func TestNormalizePayloadDecodesOnce(t *testing.T) {
	raw := url.PathEscape("upi://pay?pa=merchant@bank&am=199")
	assert.Equal(t, "upi://pay?pa=merchant@bank&am=199", NormalizePayload(raw))
}

func TestNormalizePayloadDecodesTwice(t *testing.T) {
	once := url.PathEscape("upi://pay?pa=merchant@bank&am=199")
	twice := url.PathEscape(once)
	assert.Equal(t, "upi://pay?pa=merchant@bank&am=199", NormalizePayload(twice))
}

func TestNormalizePayloadGivesUpAfterTwoRounds(t *testing.T) {
	link := "upi://pay?pa=merchant@bank"
	wrapped := link
	for i := 0; i < 4; i++ {
		wrapped = url.PathEscape(wrapped)
	}
	got := NormalizePayload(wrapped)
	// Two rounds peel two layers; the result is still encoded and must be
	// treated as opaque by the caller.
	assert.NotEqual(t, link, got)
	assert.Equal(t, PayloadOpaque, ClassifyPayload(got))
}

func TestNormalizePayloadIdempotent(t *testing.T) {
	inputs := []string{
		"upi://pay?pa=x@y&am=199",
		url.PathEscape("upi://pay?pa=x@y"),
		"https://example.com",
		"not-a-payload-at-all",
		strings.Repeat("%25", 50),
	}
	for _, in := range inputs {
		first := NormalizePayload(in)
		assert.Equal(t, first, NormalizePayload(first), "input %q", in)
	}
}

func TestNormalizePayloadTerminatesOnPathologicalInput(t *testing.T) {
	// Repeatedly-encoded percent signs decode to a different string every
	// round forever; the cap must stop the loop.
	pathological := strings.Repeat("%2525", 200)
	done := make(chan string, 1)
	go func() { done <- NormalizePayload(pathological) }()
	got := <-done
	assert.NotEmpty(t, got)
}

func TestNormalizePayloadMalformedEscapeReturnsInput(t *testing.T) {
	assert.Equal(t, "%zz-broken", NormalizePayload("%zz-broken"))
}

func TestClassifyPayload(t *testing.T) {
	tests := []struct {
		input string
		want  PayloadKind
	}{
		{"upi://pay?pa=x@y", PayloadUPILink},
		{"UPI://pay?pa=x@y", PayloadUPILink},
		{"http://example.com", PayloadHTTPURL},
		{"https://example.com", PayloadHTTPURL},
		{"data:image/png;base64,abcd", PayloadBase64Image},
		{"iVBORw0KGgo=", PayloadOpaque},
		{"", PayloadOpaque},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPayload(tt.input), "input %q", tt.input)
	}
}
