package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"larana.GO/app"
	"larana.GO/service/product"
	"larana.GO/service/spreadsheet"
)

var (
	bulkFile      string
	articleColumn string
	valueColumn   string
)

// bulkRun opens bulkFile and applies run to the loaded catalog.
func bulkRun(kind string, run func(a *app.App, f *os.File) (*product.Result, error)) {
	f, err := os.Open(bulkFile)
	if err != nil {
		fmt.Printf("Failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	a := mustApp()
	defer a.Close()

	start := time.Now()
	res, err := run(a, f)
	if err != nil {
		fmt.Printf("%s failed: %v\n", kind, err)
		os.Exit(1)
	}
	printResult(kind, res, time.Since(start))
}

func printResult(kind string, res *product.Result, took time.Duration) {
	for _, r := range res.Rejections {
		fmt.Printf("  [skip] %s\n", r)
	}
	fmt.Printf(`
=== %s ===
Rows:       %d
Updated:    %d
Created:    %d
Skipped:    %d
Outcome:    %s
Total time: %s
`, kind, res.TotalRows, res.Updated, res.Created, res.Skipped(), res.Outcome(), took.Round(time.Millisecond))
}

func columns() product.ColumnOptions {
	return product.ColumnOptions{ArticleColumn: articleColumn, ValueColumn: valueColumn}
}

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Create products from a spreadsheet in the import template layout",
	Run: func(cmd *cobra.Command, args []string) {
		bulkRun("Product import", func(a *app.App, f *os.File) (*product.Result, error) {
			rows, err := spreadsheet.ReadRows(f)
			if err != nil {
				return nil, err
			}
			return product.ImportProducts(a.Deps.Store, rows, product.ImportOptions{PlaceholderImage: a.Config.PlaceholderImage})
		})
	},
}

var pricesCmd = &cobra.Command{
	Use:   "prices:update",
	Short: "Update prices by supplier article",
	Run: func(cmd *cobra.Command, args []string) {
		bulkRun("Price update", func(a *app.App, f *os.File) (*product.Result, error) {
			rows, err := spreadsheet.ReadRows(f)
			if err != nil {
				return nil, err
			}
			return product.UpdatePrices(a.Deps.Store, rows, columns())
		})
	},
}

var stockCmd = &cobra.Command{
	Use:   "stock:update",
	Short: "Update stock quantities by supplier article",
	Run: func(cmd *cobra.Command, args []string) {
		bulkRun("Stock update", func(a *app.App, f *os.File) (*product.Result, error) {
			rows, err := spreadsheet.ReadRows(f)
			if err != nil {
				return nil, err
			}
			return product.UpdateStock(a.Deps.Store, rows, columns())
		})
	},
}

var imagesCmd = &cobra.Command{
	Use:   "images:import",
	Short: "Attach gallery images by supplier article or title",
	Run: func(cmd *cobra.Command, args []string) {
		bulkRun("Image import", func(a *app.App, f *os.File) (*product.Result, error) {
			records, err := spreadsheet.ReadRecords(f)
			if err != nil {
				return nil, err
			}
			return product.ImportImages(a.Deps.Store, records)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{importCmd, pricesCmd, stockCmd, imagesCmd} {
		c.Flags().StringVarP(&bulkFile, "file", "f", "", "XLSX or CSV file path (required)")
		c.MarkFlagRequired("file")
		Register(c)
	}
	for _, c := range []*cobra.Command{pricesCmd, stockCmd} {
		c.Flags().StringVar(&articleColumn, "article-column", "A", "Column letter of the supplier article")
		c.Flags().StringVar(&valueColumn, "value-column", "B", "Column letter of the new value")
	}
}
