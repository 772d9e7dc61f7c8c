package main

import (
	"fmt"
	"os"

	"github.com/bombsimon/hemnet/scrape"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration, mirroring the command-line
// search flags so recurring searches don't have to be retyped.
type Config struct {
	Search struct {
		LocationIDs []int    `yaml:"location_ids"`
		ItemTypes   []string `yaml:"item_types"`
		Numbers     []int    `yaml:"numbers"`
	} `yaml:"search"`

	Watch struct {
		Schedule string `yaml:"schedule"`
		Database string `yaml:"database"`
	} `yaml:"watch"`
}

// LoadConfig reads a YAML config from path. An empty path yields an
// empty config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	return &config, nil
}

// search resolves the effective search scope. Flags win over the
// config file; both empty means all categories, no location filter.
func (f searchFlags) search(config *Config) scrape.Search {
	locationIDs := f.LocationIDs
	if len(locationIDs) == 0 {
		locationIDs = config.Search.LocationIDs
	}

	itemTypes := f.ItemTypes
	if len(itemTypes) == 0 {
		itemTypes = config.Search.ItemTypes
	}

	search := scrape.Search{LocationIDs: locationIDs}
	for _, item := range itemTypes {
		search.ItemTypes = append(search.ItemTypes, scrape.ItemType(item))
	}

	return search
}
