package cart

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nanak2/homegoodsreact-sub000/models"
)

// Line is one product in a session's cart. At most one Line per product
// ID exists in a cart; quantity is always >= 1 (a drop to zero removes
// the line instead).
type Line struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Event describes a cart mutation, delivered to subscribers so badge
// and drawer views can refresh.
type Event struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
}

type session struct {
	lines   []Line
	touched time.Time
}

// Store keeps one cart per guest session, in memory. All methods are
// safe for concurrent handler use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	subs     []func(Event)
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

// Subscribe registers a change listener. Listeners run synchronously
// after each mutation and must not call back into the store.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// AddItem merges qty into an existing line for the product, or appends
// a new line snapshotting the product's name, price and image.
func (s *Store) AddItem(sessionID string, product models.Product, qty int) Line {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	sess := s.session(sessionID)
	for i := range sess.lines {
		if sess.lines[i].ProductID == product.ID {
			sess.lines[i].Quantity += qty
			line := sess.lines[i]
			s.mu.Unlock()
			s.notify(sessionID)
			return line
		}
	}
	line := Line{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: decimal.NewFromFloat(product.Price),
		ImageURL:  product.ImageURL,
		Quantity:  qty,
	}
	sess.lines = append(sess.lines, line)
	s.mu.Unlock()
	s.notify(sessionID)
	return line
}

// UpdateQuantity adjusts a line's quantity by delta. A resulting
// quantity <= 0 removes the line. Unknown product IDs are a no-op.
func (s *Store) UpdateQuantity(sessionID string, productID uint, delta int) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return
	}
	sess.touched = time.Now()
	changed := false
	for i := range sess.lines {
		if sess.lines[i].ProductID == productID {
			sess.lines[i].Quantity += delta
			if sess.lines[i].Quantity <= 0 {
				sess.lines = append(sess.lines[:i], sess.lines[i+1:]...)
			}
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify(sessionID)
	}
}

// RemoveItem deletes the line for productID if present.
func (s *Store) RemoveItem(sessionID string, productID uint) {
	s.UpdateQuantity(sessionID, productID, -1<<30)
}

// Clear empties the session's cart, used after a confirmed order.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lines = nil
		sess.touched = time.Now()
	}
	s.mu.Unlock()
	s.notify(sessionID)
}

// Lines returns a copy of the session's cart lines in insertion order.
func (s *Store) Lines(sessionID string) []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]Line, len(sess.lines))
	copy(out, sess.lines)
	return out
}

// Total is the exact sum of unitPrice x quantity over all lines. Full
// precision is retained; rounding to two decimals happens at the edges.
func (s *Store) Total(sessionID string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	if sess, ok := s.sessions[sessionID]; ok {
		for _, l := range sess.lines {
			total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
	}
	return total
}

// ItemCount is the sum of quantities across all lines.
func (s *Store) ItemCount(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	if sess, ok := s.sessions[sessionID]; ok {
		for _, l := range sess.lines {
			count += l.Quantity
		}
	}
	return count
}

// Sweep drops sessions untouched for longer than ttl and reports how
// many were removed.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Janitor sweeps stale sessions every interval. Run it in its own
// goroutine from main.
func (s *Store) Janitor(interval, ttl time.Duration) {
	for {
		time.Sleep(interval)
		s.Sweep(ttl)
	}
}

// session returns the cart for sessionID, creating it if needed.
// Caller must hold the write lock.
func (s *Store) session(sessionID string) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	sess.touched = time.Now()
	return sess
}

func (s *Store) notify(sessionID string) {
	s.mu.RLock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	count := 0
	if sess, ok := s.sessions[sessionID]; ok {
		for _, l := range sess.lines {
			count += l.Quantity
		}
	}
	s.mu.RUnlock()
	ev := Event{SessionID: sessionID, ItemCount: count}
	for _, fn := range subs {
		fn(ev)
	}
}
