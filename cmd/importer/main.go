// Command importer validates a catalogue CSV and prints the products it would load.
// Point CATALOG_CSV at the file to have the API load it at startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"orderdesk/internal/importer"
	"orderdesk/internal/logging"

	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to the product catalogue CSV")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	start := time.Now()
	products, err := importer.NewCSVImporter(f).Run(context.Background())
	if err != nil {
		logger.Fatal("import failed", zap.String("file", filePath), zap.Error(err))
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NOM\tCATEGORIE\tPRIX\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\n", p.Name, p.Category, p.Price, p.TotalStock())
	}
	_ = tw.Flush()

	fmt.Printf("Parsed %d products from %s in %s\n", len(products), filePath, time.Since(start).Truncate(time.Millisecond))
}
