package favorites

import (
	"encoding/json"
	"fmt"
	"testing"
)

// memKV is an in-memory KV for tests, with optional failure injection.
type memKV struct {
	data     map[string][]byte
	failGets bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(key string, out interface{}) (bool, error) {
	if m.failGets {
		return false, fmt.Errorf("simulated storage failure")
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *memKV) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memKV) Remove(key string) error {
	delete(m.data, key)
	return nil
}

func testItem(id int64, name string) Item {
	return Item{
		ID:        id,
		Name:      name,
		Code:      fmt.Sprintf("SP%03d", id),
		Weight:    "1 lượng",
		SellPrice: 1_200_000,
		BuyPrice:  1_150_000,
		Category:  "Bạc miếng",
	}
}

func TestAddAndList(t *testing.T) {
	svc := NewService(newMemKV())

	if got := svc.List("c1"); len(got) != 0 {
		t.Fatalf("expected empty list for new client, got %d items", len(got))
	}

	items, err := svc.Add("c1", testItem(1, "Bạc miếng 1 lượng"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after add, got %d", len(items))
	}

	// Adding the same product again is a no-op.
	items, err = svc.Add("c1", testItem(1, "Bạc miếng 1 lượng"))
	if err != nil {
		t.Fatalf("duplicate Add failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("duplicate add should not grow the list, got %d items", len(items))
	}

	if !svc.IsFavorite("c1", 1) {
		t.Error("expected product 1 to be a favorite")
	}
	if svc.IsFavorite("c1", 2) {
		t.Error("product 2 was never added")
	}
	if svc.Count("c1") != 1 {
		t.Errorf("expected count 1, got %d", svc.Count("c1"))
	}
}

func TestRemove(t *testing.T) {
	svc := NewService(newMemKV())

	if _, err := svc.Add("c1", testItem(1, "Bạc miếng 1 lượng")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.Add("c1", testItem(2, "Bạc miếng 5 chỉ")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := svc.Remove("c1", 1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("expected only product 2 to remain, got %+v", items)
	}

	// Removing a product that is not favorited is not an error.
	items, err = svc.Remove("c1", 99)
	if err != nil {
		t.Fatalf("Remove of absent product failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("remove of absent product changed the list: %+v", items)
	}
}

func TestToggle(t *testing.T) {
	svc := NewService(newMemKV())

	nowFavorite, err := svc.Toggle("c1", testItem(1, "Bạc miếng 1 lượng"))
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !nowFavorite {
		t.Error("first toggle should favorite the product")
	}

	nowFavorite, err = svc.Toggle("c1", testItem(1, "Bạc miếng 1 lượng"))
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if nowFavorite {
		t.Error("second toggle should unfavorite the product")
	}
	if svc.Count("c1") != 0 {
		t.Errorf("expected empty list after toggle off, got %d", svc.Count("c1"))
	}
}

func TestClientsAreIsolated(t *testing.T) {
	svc := NewService(newMemKV())

	if _, err := svc.Add("c1", testItem(1, "Bạc miếng 1 lượng")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if svc.Count("c2") != 0 {
		t.Error("favorites leaked across clients")
	}
	if svc.IsFavorite("c2", 1) {
		t.Error("product favorited for c1 should not appear for c2")
	}
}

func TestListToleratesStorageFailure(t *testing.T) {
	kv := newMemKV()
	svc := NewService(kv)

	if _, err := svc.Add("c1", testItem(1, "Bạc miếng 1 lượng")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	kv.failGets = true
	if got := svc.List("c1"); len(got) != 0 {
		t.Errorf("expected empty list on storage failure, got %d items", len(got))
	}
	if svc.IsFavorite("c1", 1) {
		t.Error("IsFavorite should report false when storage is unreadable")
	}
}

func TestListToleratesCorruptDocument(t *testing.T) {
	kv := newMemKV()
	kv.data["favorites:c1"] = []byte("{not json")
	svc := NewService(kv)

	if got := svc.List("c1"); len(got) != 0 {
		t.Errorf("expected empty list for corrupt document, got %d items", len(got))
	}
}

func TestClear(t *testing.T) {
	kv := newMemKV()
	svc := NewService(kv)

	if _, err := svc.Add("c1", testItem(1, "Bạc miếng 1 lượng")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Clear("c1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := kv.data["favorites:c1"]; ok {
		t.Error("Clear should remove the document")
	}
}
