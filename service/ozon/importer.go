package ozon

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"larana.GO/core/cache"
	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
	"larana.GO/service/product"
)

// ErrSessionExpired is returned when a preview session is unknown or timed out.
var ErrSessionExpired = errors.New("ozon: preview session expired, load the products again")

const (
	sessionPrefix = "ozon-preview:"
	sessionTag    = "ozon-preview"
)

// MappingStore loads and saves mapping sets per source.
type MappingStore interface {
	Load(source string) ([]catalog.FieldMapping, error)
	Save(source string, mappings []catalog.FieldMapping) error
	Reset(source string) error
}

// Catalog is the part of the product store an import writes to.
type Catalog interface {
	Articles() map[string]struct{}
	MergeImported(items []catalog.Product) (created, duplicates []catalog.Product, err error)
}

// Importer runs marketplace imports into the catalog.
type Importer struct {
	source   Source
	mappings MappingStore
	catalog  Catalog
	cache    *cache.Cache
	mapper   product.Mapper
	opts     FetchOptions
	ttl      int64
	log      *zap.Logger
}

// ImporterOptions configures an Importer.
type ImporterOptions struct {
	Fetch            FetchOptions
	PlaceholderImage string
	// SessionTTL is the preview lifetime in seconds.
	SessionTTL int64
}

// NewImporter builds an importer. src may be nil when the seller API is not
// configured; mapping management still works and fetching returns ErrNoCredentials.
func NewImporter(src Source, mappings MappingStore, cat Catalog, c *cache.Cache, opts ImporterOptions, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		c = cache.GetInstance()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 1800
	}
	return &Importer{
		source:   src,
		mappings: mappings,
		catalog:  cat,
		cache:    c,
		mapper:   product.Mapper{PlaceholderImage: opts.PlaceholderImage, MarkImported: true},
		opts:     opts.Fetch,
		ttl:      opts.SessionTTL,
		log:      log,
	}
}

// ItemSummary is one fetched item as listed for selection.
type ItemSummary struct {
	ProductID int64  `json:"product_id"`
	OfferID   string `json:"offer_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image,omitempty"`
	Present   int    `json:"present"`
	Exists    bool   `json:"exists"`
}

// Preview is what the operator confirms before committing.
type Preview struct {
	SessionID string                 `json:"session_id"`
	Total     int                    `json:"total"`
	New       int                    `json:"new"`
	Existing  int                    `json:"existing"`
	Fields    []string               `json:"fields"`
	Sample    map[string]string      `json:"sample,omitempty"`
	Product   *catalog.Product       `json:"sample_product,omitempty"`
	Mappings  []catalog.FieldMapping `json:"mappings"`
	Items     []ItemSummary          `json:"items"`
}

// Mappings returns the saved Ozon mapping set, or the defaults when none is saved.
func (im *Importer) Mappings() ([]catalog.FieldMapping, error) {
	m, err := im.mappings.Load(catalog.SourceOzon)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && len(m) == 0) {
		return product.DefaultOzonMappings(), nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SaveMappings validates and stores a mapping set.
func (im *Importer) SaveMappings(in []catalog.FieldMapping) ([]catalog.FieldMapping, error) {
	m, err := product.NormalizeMappings(in)
	if err != nil {
		return nil, err
	}
	if err := im.mappings.Save(catalog.SourceOzon, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ResetMappings drops the saved set and returns the defaults.
func (im *Importer) ResetMappings() ([]catalog.FieldMapping, error) {
	if err := im.mappings.Reset(catalog.SourceOzon); err != nil {
		return nil, err
	}
	return product.DefaultOzonMappings(), nil
}

// Preview fetches the marketplace catalog and parks it in a session until
// the operator commits a mapping.
func (im *Importer) Preview(ctx context.Context) (*Preview, error) {
	if im.source == nil {
		return nil, ErrNoCredentials
	}
	items, err := FetchAll(ctx, im.source, im.opts, im.log)
	if err != nil {
		return nil, err
	}
	mappings, err := im.Mappings()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	im.cache.Set(sessionPrefix+id, items, im.ttl, []string{sessionTag})

	existing := im.catalog.Articles()
	p := &Preview{
		SessionID: id,
		Total:     len(items),
		Fields:    SourceFields,
		Mappings:  mappings,
		Items:     make([]ItemSummary, 0, len(items)),
	}
	for _, it := range items {
		_, exists := existing[it.OfferID]
		if exists {
			p.Existing++
		} else {
			p.New++
		}
		s := ItemSummary{
			ProductID: it.ProductID,
			OfferID:   it.OfferID,
			Name:      it.Name,
			Price:     it.Price,
			Present:   it.Stocks.Present,
			Exists:    exists,
		}
		if len(it.Images) > 0 {
			s.Image = it.Images[0].URL
		}
		p.Items = append(p.Items, s)
	}
	if len(items) > 0 {
		rec := items[0].Record()
		p.Sample = make(map[string]string, len(SourceFields))
		for _, f := range SourceFields {
			p.Sample[f] = product.PreviewValue(rec, f)
		}
		sample := im.mapper.Map(rec, mappings)
		p.Product = &sample
	}
	im.log.Info("ozon: preview ready", zap.String("session", id), zap.Int("items", p.Total), zap.Int("new", p.New))
	return p, nil
}

// Commit imports the selected items of a preview session with mappings, which
// are saved as the new default. An empty selection imports every item.
func (im *Importer) Commit(sessionID string, mappings []catalog.FieldMapping, selected []int64) (*product.Result, error) {
	v, ok := im.cache.Get(sessionPrefix + sessionID)
	if !ok {
		return nil, ErrSessionExpired
	}
	items, ok := v.([]Item)
	if !ok {
		return nil, ErrSessionExpired
	}
	if len(mappings) > 0 {
		saved, err := im.SaveMappings(mappings)
		if err != nil {
			return nil, err
		}
		mappings = saved
	} else {
		m, err := im.Mappings()
		if err != nil {
			return nil, err
		}
		mappings = m
	}

	res, err := im.importItems(selectItems(items, selected), mappings)
	if err != nil {
		return nil, err
	}
	im.cache.Delete(sessionPrefix + sessionID)
	return res, nil
}

// Run fetches and imports every new item with the saved mapping set.
func (im *Importer) Run(ctx context.Context) (*product.Result, error) {
	if im.source == nil {
		return nil, ErrNoCredentials
	}
	items, err := FetchAll(ctx, im.source, im.opts, im.log)
	if err != nil {
		return nil, err
	}
	mappings, err := im.Mappings()
	if err != nil {
		return nil, err
	}
	return im.importItems(items, mappings)
}

func (im *Importer) importItems(items []Item, mappings []catalog.FieldMapping) (*product.Result, error) {
	res := &product.Result{TotalRows: len(items), Rejections: []product.Rejection{}}
	products := make([]catalog.Product, 0, len(items))
	for _, it := range items {
		products = append(products, im.mapper.Map(it.Record(), mappings))
	}

	created, duplicates, err := im.catalog.MergeImported(products)
	if err != nil {
		return nil, fmt.Errorf("merge imported: %w", err)
	}
	for _, p := range created {
		res.CreatedIDs = append(res.CreatedIDs, p.ID)
	}
	res.Created = len(created)
	for _, d := range duplicates {
		res.Rejections = append(res.Rejections, product.Rejection{
			Row:    rowOf(products, d.SupplierArticle),
			Key:    d.SupplierArticle,
			Reason: product.ReasonDuplicate,
		})
	}
	im.log.Info("ozon: import finished",
		zap.Int("items", len(items)),
		zap.Int("created", res.Created),
		zap.Int("skipped", len(duplicates)))
	return res, nil
}

func selectItems(items []Item, selected []int64) []Item {
	if len(selected) == 0 {
		return items
	}
	want := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}
	out := make([]Item, 0, len(selected))
	for _, it := range items {
		if _, ok := want[it.ProductID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// rowOf returns the 1-based position of the last product with article.
func rowOf(products []catalog.Product, article string) int {
	for i := len(products) - 1; i >= 0; i-- {
		if products[i].SupplierArticle == article {
			return i + 1
		}
	}
	return 0
}
