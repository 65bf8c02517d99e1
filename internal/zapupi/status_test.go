package zapupi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapStatus(t *testing.T) {
	// SUCCESS and COMPLETED are the same terminal state.
	assert.Equal(t, CategorySuccess, MapStatus("SUCCESS"))
	assert.Equal(t, CategorySuccess, MapStatus("COMPLETED"))

	// PENDING and CREATED both mean "keep waiting".
	assert.Equal(t, CategoryPending, MapStatus("PENDING"))
	assert.Equal(t, CategoryPending, MapStatus("CREATED"))

	assert.Equal(t, CategoryFailed, MapStatus("FAILED"))

	// Unrecognized strings pass through verbatim.
	assert.Equal(t, StatusCategory("REFUND_INITIATED"), MapStatus("REFUND_INITIATED"))
	assert.Equal(t, StatusCategory(""), MapStatus(""))
}

func TestStatusMessageBuckets(t *testing.T) {
	result := func(status string) OrderStatusResult {
		return OrderStatusResult{
			Status: StatusSuccess,
			Data:   &OrderStatusData{Status: status, OrderID: "ORD-20240115-A3B2C1"},
		}
	}

	assert.Equal(t, StatusMessage(result("SUCCESS")), StatusMessage(result("COMPLETED")))
	assert.Equal(t, StatusMessage(result("PENDING")), StatusMessage(result("CREATED")))
	assert.Contains(t, StatusMessage(result("SUCCESS")), "successful")
	assert.Contains(t, StatusMessage(result("PENDING")), "pending")
	assert.Contains(t, StatusMessage(result("FAILED")), "failed")

	// Unknown gateway status shows up verbatim without throwing.
	assert.Equal(t, "Status: REFUND_INITIATED", StatusMessage(result("REFUND_INITIATED")))
}

func TestStatusMessageMissingData(t *testing.T) {
	// The gateway sometimes answers success without a data object.
	got := StatusMessage(OrderStatusResult{Status: StatusSuccess})
	assert.Equal(t, "Payment status is not available yet. Please try again in a moment.", got)

	// Gateway-provided error messages surface as-is.
	got = StatusMessage(OrderStatusResult{Status: StatusError, Message: "Order not found"})
	assert.Equal(t, "Order not found", got)
}
