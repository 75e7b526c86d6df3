package catalog

import (
	"embed"
	"encoding/json"
	"log"

	"github.com/kimphuquy/silvershop/internal/models"
)

//go:embed products.json
var snapshotFS embed.FS

var snapshot []models.Product

func init() {
	data, err := snapshotFS.ReadFile("products.json")
	if err != nil {
		log.Fatalf("Failed to read bundled product snapshot: %v", err)
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Fatalf("Failed to parse bundled product snapshot: %v", err)
	}
}

// Snapshot returns a copy of the build-time product catalog. The returned
// slice is safe to mutate; the bundled data itself never changes.
func Snapshot() []models.Product {
	return models.CloneProducts(snapshot)
}
