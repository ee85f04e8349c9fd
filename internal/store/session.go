package store

// Session identifies the signed-in account
type Session struct {
	Server string // base URL, no trailing slash
	Token  string // full Authorization header value
}

// IsAuthenticated returns true when both server and token are known
func (s Session) IsAuthenticated() bool {
	return s.Server != "" && s.Token != ""
}

// Session returns the current session
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SetSession replaces the current session
func (s *Store) SetSession(server, token string) {
	s.mu.Lock()
	s.session = Session{Server: server, Token: token}
	s.mu.Unlock()

	s.notify(EventSession)
}

// ClearSession forgets server and token
func (s *Store) ClearSession() {
	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()

	s.notify(EventSession)
}
