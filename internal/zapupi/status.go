package zapupi

// StatusCategory is the user-facing bucket for a gateway order status.
// Unrecognized gateway strings pass through verbatim.
type StatusCategory string

const (
	CategorySuccess StatusCategory = "success"
	CategoryPending StatusCategory = "pending"
	CategoryFailed  StatusCategory = "failed"
)

// MapStatus buckets the gateway's status string. SUCCESS and COMPLETED are the
// same terminal state under two names; likewise PENDING and CREATED.
func MapStatus(gatewayStatus string) StatusCategory {
	switch gatewayStatus {
	case "SUCCESS", "COMPLETED":
		return CategorySuccess
	case "PENDING", "CREATED":
		return CategoryPending
	case "FAILED":
		return CategoryFailed
	default:
		return StatusCategory(gatewayStatus)
	}
}

// StatusMessage turns a status poll result into the line shown to the customer.
// A response missing the data object falls back to a generic message rather
// than failing.
func StatusMessage(res OrderStatusResult) string {
	if res.Status != StatusSuccess || res.Data == nil {
		if res.Message != "" {
			return res.Message
		}
		return "Payment status is not available yet. Please try again in a moment."
	}

	switch MapStatus(res.Data.Status) {
	case CategorySuccess:
		return "Payment successful! Your order is confirmed."
	case CategoryPending:
		return "Payment pending. Please complete the payment."
	case CategoryFailed:
		return "Payment failed. Please try again."
	default:
		return "Status: " + res.Data.Status
	}
}
