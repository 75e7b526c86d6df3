// Package favorites persists per-client favorite products. Each client
// (a browser session identified by an opaque id) owns one document; writes
// replace the whole list, matching the rest of the persisted product state.
package favorites

import (
	"fmt"
	"log"
)

const keyPrefix = "favorites:"

// Item is a favorited product, a snapshot of its card at the time it was
// added.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Weight    string `json:"weight"`
	SellPrice int64  `json:"sellPrice"`
	BuyPrice  int64  `json:"buyPrice"`
	Image     string `json:"image"`
	Category  string `json:"category"`
}

// KV is the key-value document store the favorites persist through.
type KV interface {
	Get(key string, out interface{}) (bool, error)
	Set(key string, value interface{}) error
	Remove(key string) error
}

// Service owns the per-client favorite lists.
type Service struct {
	kv KV
}

// NewService creates the favorites service.
func NewService(kv KV) *Service {
	return &Service{kv: kv}
}

func key(clientID string) string {
	return keyPrefix + clientID
}

// List returns the client's favorites. Storage failures yield an empty list,
// logged; a missing or unreadable document is never an error for the reader.
func (s *Service) List(clientID string) []Item {
	var items []Item
	found, err := s.kv.Get(key(clientID), &items)
	if err != nil {
		log.Printf("⚠️ Failed to load favorites for %s: %v", clientID, err)
		return nil
	}
	if !found {
		return nil
	}
	return items
}

// Add appends the item unless it is already favorited and returns the
// resulting list.
func (s *Service) Add(clientID string, item Item) ([]Item, error) {
	items := s.List(clientID)
	for _, existing := range items {
		if existing.ID == item.ID {
			return items, nil
		}
	}

	items = append(items, item)
	if err := s.kv.Set(key(clientID), items); err != nil {
		return nil, fmt.Errorf("failed to save favorites for %s: %w", clientID, err)
	}
	return items, nil
}

// Remove drops the product from the client's favorites and returns the
// resulting list. Removing a product that is not favorited is a no-op.
func (s *Service) Remove(clientID string, productID int64) ([]Item, error) {
	items := s.List(clientID)
	filtered := make([]Item, 0, len(items))
	for _, existing := range items {
		if existing.ID != productID {
			filtered = append(filtered, existing)
		}
	}

	if err := s.kv.Set(key(clientID), filtered); err != nil {
		return nil, fmt.Errorf("failed to save favorites for %s: %w", clientID, err)
	}
	return filtered, nil
}

// Toggle flips the favorited state of the item and reports the new state:
// true when the item is now a favorite.
func (s *Service) Toggle(clientID string, item Item) (bool, error) {
	if s.IsFavorite(clientID, item.ID) {
		_, err := s.Remove(clientID, item.ID)
		return false, err
	}
	_, err := s.Add(clientID, item)
	return true, err
}

// IsFavorite reports whether the product is in the client's favorites.
func (s *Service) IsFavorite(clientID string, productID int64) bool {
	for _, existing := range s.List(clientID) {
		if existing.ID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of favorites the client has.
func (s *Service) Count(clientID string) int {
	return len(s.List(clientID))
}

// Clear removes the client's favorites document entirely.
func (s *Service) Clear(clientID string) error {
	if err := s.kv.Remove(key(clientID)); err != nil {
		return fmt.Errorf("failed to clear favorites for %s: %w", clientID, err)
	}
	return nil
}
