// Command estimate computes a packaging estimate offline from a YAML catalog file.
//
// Single product:
//
//	estimate --catalog catalog.yaml --length 10 --breadth 5 --height 2 --weight 1 --quantity 3
//
// Several products sharing the catalog stock:
//
//	estimate --catalog catalog.yaml --products products.yaml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/logger"
	"github.com/guttosm/packaging-service/internal/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "estimate:", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	catalogFile  string
	productsFile string
	length       string
	breadth      string
	height       string
	weight       string
	quantity     int
	compact      bool
	verbose      bool
}

func parseArgs(args []string) (*options, error) {
	opts := &options{}

	cli := kingpin.New("estimate", "Packaging estimator - packs products into the cheapest suitable packages of a catalog")
	cli.Flag("catalog", "Path to the YAML package catalog").Short('c').Required().StringVar(&opts.catalogFile)
	cli.Flag("products", "Path to a YAML file of product lines (multi-product mode)").Short('p').StringVar(&opts.productsFile)
	cli.Flag("length", "Product length").Default("0").StringVar(&opts.length)
	cli.Flag("breadth", "Product breadth").Default("0").StringVar(&opts.breadth)
	cli.Flag("height", "Product height").Default("0").StringVar(&opts.height)
	cli.Flag("weight", "Product weight").Default("0").StringVar(&opts.weight)
	cli.Flag("quantity", "Number of product units to pack").Short('q').Default("1").IntVar(&opts.quantity)
	cli.Flag("compact", "Print JSON on a single line").BoolVar(&opts.compact)
	cli.Flag("verbose", "Log packing decisions to stderr").Short('v').BoolVar(&opts.verbose)

	if _, err := cli.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger.InitWithWriter(level, true, stderr)

	catalog, err := service.LoadCatalogFile(opts.catalogFile)
	if err != nil {
		return err
	}

	estimates := service.NewEstimateService(
		service.NewPackagingCalculatorService(service.WithLogger(logger.Component("calculator"))),
		nil,
		"",
		logger.Component("estimate"),
	)

	var result interface{}
	if opts.productsFile != "" {
		result, err = estimateProducts(estimates, catalog, opts.productsFile)
	} else {
		result, err = estimateProduct(estimates, catalog, opts)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func estimateProduct(estimates service.EstimateService, catalog []model.PackageDimension, opts *options) (*dto.EstimateResponse, error) {
	measures := make([]decimal.Decimal, 4)
	for i, m := range []struct{ name, value string }{
		{"length", opts.length},
		{"breadth", opts.breadth},
		{"height", opts.height},
		{"weight", opts.weight},
	} {
		d, err := decimal.NewFromString(m.value)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", m.name, m.value, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("invalid --%s %q: must not be negative", m.name, m.value)
		}
		measures[i] = d
	}
	if opts.quantity < 0 {
		return nil, fmt.Errorf("invalid --quantity %d: must not be negative", opts.quantity)
	}

	estimate, err := estimates.EstimateProduct(context.Background(), service.EstimateRequest{
		Product: model.ProductDimension{
			Length:   measures[0],
			Breadth:  measures[1],
			Height:   measures[2],
			Weight:   measures[3],
			Quantity: opts.quantity,
		},
		Catalog: catalog,
	})
	if err != nil {
		return nil, err
	}

	return &dto.EstimateResponse{
		PackagingEstimateResult: estimate.Result,
		FitsAnyPackage:          estimate.FitsAnyPackage,
		Note:                    estimate.Note,
	}, nil
}

// productsFile is the YAML layout of a multi-product request. Omitted measures are zero.
type productsFile struct {
	Products []struct {
		ProductID string          `yaml:"product_id"`
		Length    decimal.Decimal `yaml:"length"`
		Breadth   decimal.Decimal `yaml:"breadth"`
		Height    decimal.Decimal `yaml:"height"`
		Weight    decimal.Decimal `yaml:"weight"`
		Quantity  int             `yaml:"quantity"`
	} `yaml:"products"`
}

func loadProducts(path string) ([]model.ProductLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}

	var file productsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse products file: %w", err)
	}

	lines := make([]model.ProductLine, 0, len(file.Products))
	for i, p := range file.Products {
		if p.ProductID == "" {
			return nil, fmt.Errorf("parse products file: product %d: product_id is required", i)
		}
		lines = append(lines, model.ProductLine{
			ProductID: p.ProductID,
			Dimension: model.ProductDimension{
				Length:   p.Length,
				Breadth:  p.Breadth,
				Height:   p.Height,
				Weight:   p.Weight,
				Quantity: p.Quantity,
			},
		})
	}
	return lines, nil
}

func estimateProducts(estimates service.EstimateService, catalog []model.PackageDimension, path string) (*dto.MultiEstimateResponse, error) {
	lines, err := loadProducts(path)
	if err != nil {
		return nil, err
	}

	estimate, err := estimates.EstimateProducts(context.Background(), service.MultiEstimateRequest{
		Products: lines,
		Catalog:  catalog,
	})
	if err != nil {
		return nil, err
	}

	unfit := estimate.UnfitProducts
	if unfit == nil {
		unfit = []string{}
	}
	return &dto.MultiEstimateResponse{
		MultiProductPackagingResult: estimate.Result,
		UnfitProducts:               unfit,
	}, nil
}
