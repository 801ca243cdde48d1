package launcher

import "sync"

type iconRequest struct {
	name string
	size uint32
}

// IconStore hands out icon uids the way the host's icon fetcher does:
// every distinct (name, size) pair gets its own non-zero uid, and asking
// again returns the same one.
type IconStore struct {
	uids     map[iconRequest]uint32
	requests []iconRequest
	queries  int
	mu       sync.Mutex
}

// NewIconStore creates an empty store.
func NewIconStore() *IconStore {
	return &IconStore{uids: make(map[iconRequest]uint32)}
}

// QueryIcon returns the uid for name at size.
func (s *IconStore) QueryIcon(name string, size uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries++
	req := iconRequest{name: name, size: size}
	if uid, ok := s.uids[req]; ok {
		return uid
	}
	s.requests = append(s.requests, req)
	uid := uint32(len(s.requests))
	s.uids[req] = uid
	return uid
}

// Lookup returns the request a uid was issued for.
func (s *IconStore) Lookup(uid uint32) (name string, size uint32, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uid == 0 || int(uid) > len(s.requests) {
		return "", 0, false
	}
	req := s.requests[uid-1]
	return req.name, req.size, true
}

// Queries returns how many times QueryIcon was called.
func (s *IconStore) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}
