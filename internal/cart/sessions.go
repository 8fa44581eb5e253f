package cart

// Sessions maps visitor session ids to their carts. Access is serialized by
// the owning services.State.
type Sessions struct {
	carts map[string]*Cart
}

func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// For returns the session's cart, creating an empty one on first use.
func (s *Sessions) For(sid string) *Cart {
	c, ok := s.carts[sid]
	if !ok {
		c = New()
		s.carts[sid] = c
	}
	return c
}

// Peek returns the session's cart without creating it.
func (s *Sessions) Peek(sid string) (*Cart, bool) {
	c, ok := s.carts[sid]
	return c, ok
}

func (s *Sessions) Drop(sid string) { delete(s.carts, sid) }

func (s *Sessions) Len() int { return len(s.carts) }
