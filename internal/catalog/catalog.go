// Package catalog owns the product list: the bundled build-time snapshot,
// the persisted copy carrying accumulated price overrides, and the
// reconciliation between the two.
package catalog

import (
	"log"
	"strconv"
	"time"

	"github.com/kimphuquy/silvershop/internal/models"
)

// Persisted state keys. The updated set supersedes the initial set whenever
// both exist.
const (
	KeyInitialProducts = "products:initial"
	KeyUpdatedProducts = "products:updated"
	KeyLastPriceUpdate = "products:last_price_update"
)

// KV is the key-value document store the catalog persists through.
type KV interface {
	Get(key string, out interface{}) (bool, error)
	Set(key string, value interface{}) error
	Remove(key string) error
}

// Notifier receives a payload-free signal after the persisted product set
// changed. Consumers are expected to re-read via CurrentProducts.
type Notifier interface {
	NotifyProductsChanged()
}

// Service reconciles the bundled snapshot with the persisted product set.
// Every read re-runs outdated detection and the merge, so callers always see
// the freshest state even when another instance persisted in between.
type Service struct {
	kv       KV
	notifier Notifier
	snapshot []models.Product
}

// NewService creates a Service over the bundled snapshot.
func NewService(kv KV) *Service {
	return &Service{kv: kv, snapshot: snapshot}
}

// NewServiceWithSnapshot creates a Service over an explicit snapshot.
func NewServiceWithSnapshot(kv KV, snap []models.Product) *Service {
	return &Service{kv: kv, snapshot: snap}
}

// SetNotifier registers the change notifier. A nil notifier disables signals.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Snapshot returns a copy of the service's build-time catalog.
func (s *Service) Snapshot() []models.Product {
	return models.CloneProducts(s.snapshot)
}

// Merge produces the live product list: left-biased by snapshot order and
// keyed by id. The cached version wins for ids present in both, so price
// overrides survive; snapshot-only ids are surfaced as new products;
// cache-only ids are dropped because the snapshot is authoritative for which
// products exist. Neither input is mutated.
func Merge(snap, cached []models.Product) []models.Product {
	byID := make(map[int64]models.Product, len(cached))
	for _, p := range cached {
		byID[p.ID] = p
	}

	merged := make([]models.Product, 0, len(snap))
	for _, p := range snap {
		if cachedProduct, ok := byID[p.ID]; ok {
			merged = append(merged, cachedProduct.Clone())
		} else {
			merged = append(merged, p.Clone())
		}
	}
	return merged
}

// IsOutdated reports whether the persisted set lags the snapshot: a count
// mismatch or a snapshot id missing from the cache. Field-level changes to
// existing products are deliberately not detected; once a cache exists it is
// the source of truth for price and stock fields.
func (s *Service) IsOutdated() bool {
	for _, key := range []string{KeyUpdatedProducts, KeyInitialProducts} {
		var cached []models.Product
		found, err := s.kv.Get(key, &cached)
		if err != nil {
			log.Printf("⚠️ Outdated check failed for %s, assuming outdated: %v", key, err)
			return true
		}
		if !found {
			continue
		}

		if len(cached) != len(s.snapshot) {
			log.Printf("Product count mismatch in %s: snapshot has %d, cache has %d", key, len(s.snapshot), len(cached))
			return true
		}

		cachedIDs := make(map[int64]struct{}, len(cached))
		for _, p := range cached {
			cachedIDs[p.ID] = struct{}{}
		}
		for _, p := range s.snapshot {
			if _, ok := cachedIDs[p.ID]; !ok {
				log.Printf("New product found in snapshot: ID %d", p.ID)
				return true
			}
		}
	}
	return false
}

// CurrentProducts is the consumer-facing read path. It never returns an
// error: any storage or decode failure falls back to the raw snapshot.
func (s *Service) CurrentProducts() []models.Product {
	if s.IsOutdated() {
		log.Println("🔄 Persisted products outdated, reconciling with snapshot...")
		return s.reconcileOutdated()
	}

	var cached []models.Product
	found, err := s.kv.Get(KeyUpdatedProducts, &cached)
	if err != nil {
		log.Printf("⚠️ Failed to load updated products, falling back to snapshot: %v", err)
		return s.Snapshot()
	}
	if found {
		return Merge(s.snapshot, cached)
	}

	found, err = s.kv.Get(KeyInitialProducts, &cached)
	if err != nil {
		log.Printf("⚠️ Failed to load initial products, falling back to snapshot: %v", err)
		return s.Snapshot()
	}
	if found {
		return Merge(s.snapshot, cached)
	}

	// First-ever load: persist the snapshot as the initial set.
	snap := s.Snapshot()
	if err := s.kv.Set(KeyInitialProducts, snap); err != nil {
		log.Printf("⚠️ Failed to persist initial products: %v", err)
	} else {
		log.Printf("First load - saved %d initial products", len(snap))
	}
	return snap
}

// reconcileOutdated re-bases the persisted set on the current snapshot while
// keeping accumulated price overrides: for ids present in both, the snapshot
// record is used but cached sell/buy prices survive when they are positive.
func (s *Service) reconcileOutdated() []models.Product {
	var cached []models.Product
	found, err := s.kv.Get(KeyUpdatedProducts, &cached)
	if err != nil {
		// A key that cannot be decoded would keep every read on the
		// outdated path, so drop it and rebuild from the snapshot.
		log.Printf("⚠️ Reconcile failed to load updated products, discarding key: %v", err)
		if removeErr := s.kv.Remove(KeyUpdatedProducts); removeErr != nil {
			log.Printf("⚠️ Failed to remove unreadable updated products key: %v", removeErr)
		}
		found = false
	}

	snap := s.Snapshot()
	if !found {
		// No price overrides to keep, the fresh snapshot replaces everything.
		if err := s.kv.Set(KeyInitialProducts, snap); err != nil {
			log.Printf("⚠️ Reconcile failed to persist initial products: %v", err)
		}
		return snap
	}

	overrides := make(map[int64]models.Product, len(cached))
	for _, p := range cached {
		overrides[p.ID] = p
	}

	merged := make([]models.Product, 0, len(snap))
	for _, p := range snap {
		if prev, ok := overrides[p.ID]; ok && (prev.SellPrice > 0 || prev.BuyPrice > 0) {
			p.SellPrice = prev.SellPrice
			p.BuyPrice = prev.BuyPrice
		}
		merged = append(merged, p)
	}

	if err := s.kv.Set(KeyInitialProducts, s.Snapshot()); err != nil {
		log.Printf("⚠️ Reconcile failed to persist initial products: %v", err)
	}
	if err := s.kv.Set(KeyUpdatedProducts, merged); err != nil {
		log.Printf("⚠️ Reconcile failed to persist updated products: %v", err)
	}
	log.Printf("✅ Reconciled %d products (price overrides preserved)", len(merged))
	return models.CloneProducts(merged)
}

// ForceResync discards all persisted product state, re-persists the snapshot
// as the initial set and returns it. Destructive, meant for manual recovery.
func (s *Service) ForceResync() []models.Product {
	log.Println("🔄 Force resync: discarding persisted product state...")
	if err := s.kv.Remove(KeyUpdatedProducts); err != nil {
		log.Printf("⚠️ Force resync failed to remove updated products: %v", err)
	}
	if err := s.kv.Remove(KeyInitialProducts); err != nil {
		log.Printf("⚠️ Force resync failed to remove initial products: %v", err)
	}
	if err := s.kv.Remove(KeyLastPriceUpdate); err != nil {
		log.Printf("⚠️ Force resync failed to remove last update timestamp: %v", err)
	}

	snap := s.Snapshot()
	if err := s.kv.Set(KeyInitialProducts, snap); err != nil {
		log.Printf("⚠️ Force resync failed to persist initial products: %v", err)
	}
	log.Printf("✅ Force resync complete: %d products from snapshot", len(snap))

	s.notify()
	return snap
}

// SaveUpdated persists a new override-bearing product set, records the
// update timestamp and signals consumers to re-read.
func (s *Service) SaveUpdated(products []models.Product) error {
	if err := s.kv.Set(KeyUpdatedProducts, products); err != nil {
		return err
	}
	s.setLastUpdate(time.Now())
	log.Printf("Saved %d updated products", len(products))

	s.notify()
	return nil
}

// LastUpdateTime returns when the last successful price update completed.
func (s *Service) LastUpdateTime() (time.Time, bool) {
	var raw string
	found, err := s.kv.Get(KeyLastPriceUpdate, &raw)
	if err != nil || !found {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// setLastUpdate stores the timestamp as epoch milliseconds in a string,
// matching the persisted format consumers of the raw store expect.
func (s *Service) setLastUpdate(t time.Time) {
	if err := s.kv.Set(KeyLastPriceUpdate, strconv.FormatInt(t.UnixMilli(), 10)); err != nil {
		log.Printf("⚠️ Failed to persist last update timestamp: %v", err)
	}
}

func (s *Service) notify() {
	if s.notifier != nil {
		s.notifier.NotifyProductsChanged()
	}
}
