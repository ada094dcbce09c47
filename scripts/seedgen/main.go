package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"jaggery-store/internal/seed"
)

// Writes a sample seed-products JSON file usable with SEED_SOURCE=file.
func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	path := filepath.Join(dataDir, "products.json")

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(seed.DefaultProducts()); err != nil {
		log.Fatalf("Failed to write seed products: %v", err)
	}

	fmt.Printf("Wrote seed products to %s\n", path)
}
