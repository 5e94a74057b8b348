package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"larana.GO/model/entity/catalog"
	"larana.GO/service/product"
	"larana.GO/service/spreadsheet"
)

var outDir string

func writeFile(f spreadsheet.File) {
	path := filepath.Join(outDir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		fmt.Printf("Write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", path, len(f.Data))
}

var exportCmd = &cobra.Command{
	Use:   "products:export",
	Short: "Export the catalog to a dated XLSX file",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()
		f, err := product.ExportCatalog(a.Deps.Store.Snapshot(), time.Now())
		if err != nil {
			fmt.Printf("Export failed: %v\n", err)
			os.Exit(1)
		}
		writeFile(f)
	},
}

var templatesCmd = &cobra.Command{
	Use:       "templates:write [prices|stock|products|images]",
	Short:     "Write sample spreadsheets for the bulk uploads",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{product.TemplatePrices, product.TemplateStock, product.TemplateProducts, product.TemplateImages},
	Run: func(cmd *cobra.Command, args []string) {
		kinds := []string{product.TemplatePrices, product.TemplateStock, product.TemplateProducts}
		if len(args) == 1 {
			kinds = args
		}
		var products []catalog.Product
		for _, kind := range kinds {
			// Only the image template is built from catalog rows.
			if kind == product.TemplateImages {
				a := mustApp()
				products = a.Deps.Store.Snapshot()
				a.Close()
			}
			f, err := product.Template(kind, products)
			if err != nil {
				fmt.Printf("Template %s: %v\n", kind, err)
				os.Exit(1)
			}
			writeFile(f)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, templatesCmd} {
		c.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
		Register(c)
	}
}
