// Package updater schedules and runs price update cycles against the
// external source, applying matched prices to the cached product set.
package updater

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kimphuquy/silvershop/internal/catalog"
	"github.com/kimphuquy/silvershop/internal/config"
	"github.com/kimphuquy/silvershop/internal/models"
	"github.com/kimphuquy/silvershop/internal/pricefeed"
)

// Engine orchestrates price update cycles. At most one cycle runs at a
// time; a trigger that arrives while one is in flight is dropped, not
// queued.
type Engine struct {
	mu sync.RWMutex

	catalog *catalog.Service
	source  pricefeed.Source
	cfg     config.CrawlerConfig

	// State
	isRunning        bool
	updateInProgress bool
	lastCheck        time.Time
	lastResult       *UpdateResult

	// Channels
	stopChan chan struct{}
}

// PriceChange records one product whose price or availability moved during
// an update cycle.
type PriceChange struct {
	ProductID    int64  `json:"productId"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	OldSellPrice int64  `json:"oldSellPrice"`
	NewSellPrice int64  `json:"newSellPrice"`
	OldBuyPrice  int64  `json:"oldBuyPrice"`
	NewBuyPrice  int64  `json:"newBuyPrice"`
	OldInStock   bool   `json:"oldInStock"`
	NewInStock   bool   `json:"newInStock"`
}

// UpdateResult represents the outcome of one update cycle.
type UpdateResult struct {
	Success   bool          `json:"success"`
	Skipped   bool          `json:"skipped"`
	Reason    string        `json:"reason,omitempty"`
	Updated   int           `json:"updated"`
	Total     int           `json:"total"`
	Errors    []string      `json:"errors,omitempty"`
	Changes   []PriceChange `json:"changes,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewEngine creates an update engine over the given catalog and record
// source.
func NewEngine(cat *catalog.Service, source pricefeed.Source, cfg config.CrawlerConfig) *Engine {
	return &Engine{
		catalog:  cat,
		source:   source,
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
}

// Start starts the engine and, when enabled, its periodic update loop.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isRunning {
		return fmt.Errorf("update engine already running")
	}
	e.isRunning = true

	log.Println("🔄 Price update engine starting...")

	if e.cfg.AutoUpdateEnabled {
		go e.autoUpdateLoop()
	}

	log.Println("✅ Price update engine started")
	return nil
}

// Stop stops the engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isRunning {
		return
	}

	log.Println("🛑 Stopping price update engine...")
	e.isRunning = false
	close(e.stopChan)
	log.Println("✅ Price update engine stopped")
}

// autoUpdateLoop runs periodic update checks until the engine stops.
func (e *Engine) autoUpdateLoop() {
	ticker := time.NewTicker(e.cfg.AutoUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.CheckAndUpdate(context.Background())
		case <-e.stopChan:
			return
		}
	}
}

// CheckAndUpdate runs an update cycle unless a throttle gate blocks it:
// checks are rate limited to one per cooldown window, and a cycle whose
// prices are still fresh is not repeated.
func (e *Engine) CheckAndUpdate(ctx context.Context) *UpdateResult {
	e.mu.Lock()
	if since := time.Since(e.lastCheck); since < e.cfg.CheckCooldown {
		e.mu.Unlock()
		return e.skipped("checked recently, cooling down")
	}
	e.lastCheck = time.Now()
	e.mu.Unlock()

	if last, ok := e.catalog.LastUpdateTime(); ok && time.Since(last) < e.cfg.FreshnessWindow {
		log.Printf("⏳ Prices updated %v ago, still fresh", time.Since(last).Round(time.Second))
		return e.skipped("prices still fresh")
	}

	return e.TriggerUpdate(ctx)
}

// TriggerUpdate runs one full update cycle immediately, bypassing the
// cooldown and freshness gates. A trigger while another cycle is in flight
// returns a skipped result without doing any work.
func (e *Engine) TriggerUpdate(ctx context.Context) *UpdateResult {
	e.mu.Lock()
	if e.updateInProgress {
		e.mu.Unlock()
		log.Println("⏳ Update already in progress, dropping trigger")
		return e.skipped("update already in progress")
	}
	e.updateInProgress = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.updateInProgress = false
		e.mu.Unlock()
	}()

	result := e.runCycle(ctx)

	e.mu.Lock()
	e.lastCheck = time.Now()
	e.lastResult = result
	e.mu.Unlock()

	return result
}

// runCycle fetches records, matches them against the current product set
// and persists the result when anything actually changed.
func (e *Engine) runCycle(ctx context.Context) *UpdateResult {
	start := time.Now()
	result := &UpdateResult{Timestamp: start}

	log.Println("🔄 Starting price update cycle...")

	records, err := e.source.FetchRecords(ctx)
	if err != nil {
		log.Printf("⚠️ Price update failed: %v", err)
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result
	}
	if len(records) == 0 {
		log.Println("⚠️ Source document yielded no product records")
		result.Errors = append(result.Errors, "no product records found in source document")
		result.Duration = time.Since(start)
		return result
	}

	products := e.catalog.CurrentProducts()
	result.Total = len(products)

	matches := pricefeed.MatchRecords(records, products)
	log.Printf("📦 Matched %d of %d crawled records against %d products",
		len(matches), len(records), len(products))

	updated := models.CloneProducts(products)
	byID := make(map[int64]int, len(updated))
	for i := range updated {
		byID[updated[i].ID] = i
	}

	for _, m := range matches {
		i, ok := byID[m.Product.ID]
		if !ok {
			continue
		}
		p := &updated[i]

		if p.SellPrice == m.Record.SellPrice && p.BuyPrice == m.Record.BuyPrice && p.InStock == m.Record.InStock {
			continue
		}

		result.Changes = append(result.Changes, PriceChange{
			ProductID:    p.ID,
			Name:         p.Name,
			Code:         p.Code,
			OldSellPrice: p.SellPrice,
			NewSellPrice: m.Record.SellPrice,
			OldBuyPrice:  p.BuyPrice,
			NewBuyPrice:  m.Record.BuyPrice,
			OldInStock:   p.InStock,
			NewInStock:   m.Record.InStock,
		})

		p.SellPrice = m.Record.SellPrice
		p.BuyPrice = m.Record.BuyPrice
		p.InStock = m.Record.InStock
		p.Status = models.StatusForStock(m.Record.InStock)
		result.Updated++
	}

	if result.Updated == 0 {
		log.Println("✅ Price check complete, no changes")
		result.Success = true
		result.Duration = time.Since(start)
		return result
	}

	if err := e.catalog.SaveUpdated(updated); err != nil {
		log.Printf("⚠️ Failed to persist updated prices: %v", err)
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	log.Printf("✅ Price update complete in %v: %d of %d products changed",
		result.Duration.Round(time.Millisecond), result.Updated, result.Total)
	return result
}

// skipped builds a no-op result.
func (e *Engine) skipped(reason string) *UpdateResult {
	return &UpdateResult{
		Success:   true,
		Skipped:   true,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// IsUpdating reports whether a cycle is currently in flight.
func (e *Engine) IsUpdating() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.updateInProgress
}

// LastResult returns the most recent completed cycle result, or nil when no
// cycle has run yet.
func (e *Engine) LastResult() *UpdateResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastResult
}

// LastCheck returns the time of the most recent check attempt.
func (e *Engine) LastCheck() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastCheck
}
