package graphqlserver

import (
	"context"
	"errors"
	"sort"
	"strings"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"larana.GO/graphql"
	gqlmodels "larana.GO/graphql/models"
	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
	"larana.GO/service/product"
)

// Products is the read side of the catalog store.
type Products interface {
	Snapshot() []catalog.Product
	Get(id int) (catalog.Product, bool)
	FindByArticle(article string) (catalog.Product, bool)
	Variants(id int) []catalog.Product
}

// Bundles lists bundles with derived availability.
type Bundles interface {
	FindAll() ([]catalog.Bundle, error)
	FindByID(id uint) (*catalog.Bundle, error)
}

// QueryResolver implements the Query fields.
type QueryResolver struct {
	products Products
	bundles  Bundles
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Category *string
	InStock  *bool
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) ([]*gqlmodels.Product, error) {
	out := []*gqlmodels.Product{}
	for _, p := range r.products.Snapshot() {
		if args.Category != nil && p.Category != *args.Category {
			continue
		}
		if args.InStock != nil && p.InStock != *args.InStock {
			continue
		}
		out = append(out, gqlmodels.FromProduct(p, r.products))
	}
	return out, nil
}

// ProductArgs selects a product by id or supplier article.
type ProductArgs struct {
	ID      *int32
	Article *string
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	if args.ID != nil {
		if p, ok := r.products.Get(int(*args.ID)); ok {
			return gqlmodels.FromProduct(p, r.products), nil
		}
		return nil, nil
	}
	if args.Article != nil {
		if p, ok := r.products.FindByArticle(strings.TrimSpace(*args.Article)); ok {
			return gqlmodels.FromProduct(p, r.products), nil
		}
	}
	return nil, nil
}

// Categories lists storefront categories in menu order, then any others by name.
func (r *QueryResolver) Categories(ctx context.Context) ([]*gqlmodels.Category, error) {
	byName := map[string]*gqlmodels.Category{}
	for _, name := range product.StorefrontCategories {
		byName[name] = &gqlmodels.Category{Name: name}
	}
	var extra []string
	for _, p := range r.products.Snapshot() {
		c, ok := byName[p.Category]
		if !ok {
			c = &gqlmodels.Category{Name: p.Category}
			byName[p.Category] = c
			extra = append(extra, p.Category)
		}
		c.ProductCount++
		if p.InStock {
			c.InStockCount++
		}
	}
	sort.Strings(extra)
	out := make([]*gqlmodels.Category, 0, len(byName))
	for _, name := range append(append([]string{}, product.StorefrontCategories...), extra...) {
		out = append(out, byName[name])
	}
	return out, nil
}

func (r *QueryResolver) Bundles(ctx context.Context) ([]*gqlmodels.Bundle, error) {
	bundles, err := r.bundles.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Bundle, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, gqlmodels.FromBundle(b))
	}
	return out, nil
}

// BundleArgs matches the bundle query arguments.
type BundleArgs struct {
	ID int32
}

func (r *QueryResolver) Bundle(ctx context.Context, args BundleArgs) (*gqlmodels.Bundle, error) {
	if args.ID <= 0 {
		return nil, nil
	}
	b, err := r.bundles.FindByID(uint(args.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return gqlmodels.FromBundle(*b), nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(products Products, bundles Bundles) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &QueryResolver{products: products, bundles: bundles}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
