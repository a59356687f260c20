// cmd/tools/catalog-indexer/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"schemesathi/internal/common/config"
	"schemesathi/internal/common/database"
	"schemesathi/internal/schemes/catalog"
	"schemesathi/internal/workers/schemes/search-schemes/queries"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to the usual search paths)")
	index := flag.String("index", "", "Index name (defaults to search.index)")
	timeout := flag.Duration("timeout", time.Minute, "Overall timeout")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *index == "" {
		*index = cfg.Search.Index
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating Elasticsearch client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, es.Client, *index, catalog.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, es *elasticsearch.Client, index string, cat *catalog.Catalog) error {
	created, err := queries.EnsureIndex(ctx, es, index)
	if err != nil {
		return fmt.Errorf("ensure index %s: %w", index, err)
	}
	if created {
		fmt.Printf("Created index %s\n", index)
	}

	n, err := queries.BulkIndex(ctx, es, index, cat.All())
	if err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	fmt.Printf("Indexed %d of %d schemes into %s\n", n, cat.Len(), index)
	return nil
}
