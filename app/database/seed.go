package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/logger"
	"gopkg.in/yaml.v3"
)

//go:embed seeddata/products.json
var defaultSeedData []byte

var validate = validator.New()

// SeedProduct is one entry of a seed dataset.
type SeedProduct struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
	Category    string `json:"category" yaml:"category" validate:"required"`
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Created int
	Skipped int
	Invalid int
}

// ProductCreator is the part of the catalog manager the seeder needs.
type ProductCreator interface {
	CreateProduct(ctx context.Context, productName, productDescription, categoryName string) (uuid.UUID, error)
}

// LoadSeedFile reads a dataset from path. JSON and YAML are recognised by
// extension; an empty path yields the embedded default dataset.
func LoadSeedFile(path string) ([]SeedProduct, error) {
	if path == "" {
		return ParseSeed(defaultSeedData, "json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseSeed(data, "json")
	case ".yaml", ".yml":
		return ParseSeed(data, "yaml")
	default:
		return nil, fmt.Errorf("seed: unsupported file extension %q", ext)
	}
}

// ParseSeed decodes a dataset in the given format ("json" or "yaml").
func ParseSeed(data []byte, format string) ([]SeedProduct, error) {
	var products []SeedProduct
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &products)
	case "yaml":
		err = yaml.Unmarshal(data, &products)
	default:
		return nil, fmt.Errorf("seed: unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", format, err)
	}
	return products, nil
}

// Seed feeds every entry through the catalog manager, so categories are
// deduplicated by name and ids are generated exactly as for API requests.
// Entries already present are counted as skipped; incomplete entries are
// logged and counted as invalid. The first store error aborts the run.
func Seed(ctx context.Context, creator ProductCreator, products []SeedProduct, log *logger.Logger) (SeedResult, error) {
	var result SeedResult
	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			log.Warn("skipping invalid seed entry", "index", i, "error", err)
			result.Invalid++
			continue
		}

		id, err := creator.CreateProduct(ctx, p.Name, p.Description, p.Category)
		if err != nil {
			return result, fmt.Errorf("seed: entry %d (%s): %w", i, p.Name, err)
		}
		if id == uuid.Nil {
			result.Skipped++
			continue
		}
		result.Created++
	}

	log.Info("seeding finished", "created", result.Created, "skipped", result.Skipped, "invalid", result.Invalid)
	return result, nil
}
