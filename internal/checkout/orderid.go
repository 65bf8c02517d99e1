package checkout

import (
	"crypto/rand"
	"strconv"
	"time"
)

// Removed I, O, 1, 0 to avoid confusion when customers read the id back.
const orderIDCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewOrderID returns a public order id of the form ORD-20240115-A3B2C1.
// Uniqueness is probabilistic; nothing checks server-side and the order
// volume of a single storefront keeps the collision odds negligible.
func NewOrderID() string {
	return newOrderIDAt(time.Now())
}

func newOrderIDAt(t time.Time) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "ORD-" + strconv.FormatInt(t.Unix(), 10)
	}
	for i := range b {
		b[i] = orderIDCharset[int(b[i])%len(orderIDCharset)]
	}
	return "ORD-" + t.Format("20060102") + "-" + string(b)
}
