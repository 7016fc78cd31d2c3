package cache

import "container/list"

// evictOldest drops the back of the recency list. Caller holds s.mu.
func (s *Store) evictOldest() {
	elem := s.lru.Back()
	if elem != nil {
		s.removeElement(elem)
		s.evictions++
	}
}

// removeElement unlinks elem from both the list and the map. Caller holds s.mu.
func (s *Store) removeElement(elem *list.Element) {
	s.lru.Remove(elem)
	delete(s.entries, elem.Value.(*entry).key)
}
