package checkout

import (
	"sync"
	"time"

	"github.com/Hunter28-lucky/Ecom-stores/internal/zapupi"
)

// Session holds the transient state of one in-progress checkout: the form
// snapshot, the gateway result, the payment window and the rendered QR code.
// It lives only in memory; a server restart loses it, which mirrors the
// payment window itself being a best-effort client-side deadline.
type Session struct {
	mu sync.Mutex

	OrderID     string
	ProductID   int
	ProductName string
	Quantity    int
	UnitPrice   int
	TotalAmount int
	Details     CustomerDetails
	CreatedAt   time.Time

	result        *zapupi.CreateOrderResult
	qrImage       string
	upiLink       string
	window        *Window
	statusMessage string

	// epoch increments on every Reset so a gateway response that comes back
	// for an abandoned attempt is recognized as stale and dropped.
	epoch int

	checking bool // a status poll is in flight; further clicks are ignored
}

func NewSession(orderID string, productID int, productName string, quantity, unitPrice int, details CustomerDetails) *Session {
	return &Session{
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice * quantity,
		Details:     details,
		CreatedAt:   time.Now(),
		window:      NewWindow(),
	}
}

// Epoch captures the attempt marker before a gateway call is issued.
func (s *Session) Epoch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Confirm installs a successful create-order result, starts the payment
// window and renders the QR code. A result arriving with a stale epoch (the
// session was reset while the request was in flight) is dropped, as is a
// non-success result: the window must only ever start on gateway success.
func (s *Session) Confirm(res zapupi.CreateOrderResult, epoch int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || res.Status != zapupi.StatusSuccess {
		return false
	}

	s.result = &res
	s.qrImage = BuildQRImage(res)
	s.upiLink = UPILink(res)
	s.window.Start()
	return true
}

// Reset abandons the current attempt: countdown cleared, result dropped,
// epoch bumped so in-flight responses get ignored.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = nil
	s.qrImage = ""
	s.upiLink = ""
	s.statusMessage = ""
	s.window.Reset()
	s.epoch++
	s.checking = false
}

// BeginStatusCheck debounces the "check status" trigger: it reports whether
// the caller may poll and refuses while an earlier poll is still in flight
// or the window has expired.
func (s *Session) BeginStatusCheck() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checking || s.result == nil || s.window.Expired() {
		return false
	}
	s.checking = true
	return true
}

// EndStatusCheck records the poll outcome and re-enables the trigger.
func (s *Session) EndStatusCheck(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checking = false
	s.statusMessage = message
}

func (s *Session) Confirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil
}

func (s *Session) Result() zapupi.CreateOrderResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return zapupi.CreateOrderResult{}
	}
	return *s.result
}

func (s *Session) QRImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qrImage
}

func (s *Session) UPIDeepLink() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upiLink
}

func (s *Session) StatusMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusMessage
}

func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Expired()
}

func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Remaining()
}

// Sessions is the in-memory registry of active checkouts keyed by order id.
type Sessions struct {
	mu       sync.Mutex
	byOrder  map[string]*Session
	maxIdle  time.Duration
	lastSeen map[string]time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		byOrder:  make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
		maxIdle:  30 * time.Minute,
	}
}

func (r *Sessions) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOrder[s.OrderID] = s
	r.lastSeen[s.OrderID] = time.Now()
	r.evictLocked()
}

func (r *Sessions) Get(orderID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byOrder[orderID]
	if !ok {
		return nil
	}
	r.lastSeen[orderID] = time.Now()
	return s
}

func (r *Sessions) Remove(orderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byOrder, orderID)
	delete(r.lastSeen, orderID)
}

// evictLocked drops sessions idle past maxIdle. Abandoned checkouts would
// otherwise accumulate for the life of the process.
func (r *Sessions) evictLocked() {
	cutoff := time.Now().Add(-r.maxIdle)
	for id, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.byOrder, id)
			delete(r.lastSeen, id)
		}
	}
}
