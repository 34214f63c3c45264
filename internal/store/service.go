package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/emprendia/backend-tienda/internal/obs"
	"github.com/emprendia/backend-tienda/internal/quote"
	"github.com/emprendia/backend-tienda/internal/record"
)

// ErrStoreNotFound indicates the store does not exist.
var ErrStoreNotFound = errors.New("store not found")

// ErrProductNotFound indicates the product does not exist in the store.
var ErrProductNotFound = errors.New("product not found")

const storesEntity = "stores"

func productsEntity(storeID string) string {
	return "products:" + storeID
}

// Record is the persisted merchant store document.
type Record struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	WhatsApp  string            `json:"whatsapp"`
	Config    quote.StoreConfig `json:"config"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Product is a persisted product document. Derived prices are a cache of the
// engine's derivation over current inputs and are refreshed on every write
// that could change them.
type Product struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	ImageURL  string               `json:"imageUrl,omitempty"`
	Pricing   quote.ProductPricing `json:"pricing"`
	Derived   quote.DerivedPrices  `json:"derived"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Service manages store configuration and product pricing records.
type Service struct {
	Records record.Store
	Cache   *Cache
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// GetStore loads a store record, preferring the cache snapshot.
func (s *Service) GetStore(ctx context.Context, storeID string) (Record, error) {
	var rec Record
	if ok, err := s.Cache.GetJSON(ctx, storeCacheKey(storeID), &rec); err == nil && ok {
		return rec, nil
	}
	doc, err := s.Records.Get(ctx, storesEntity, storeID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return Record{}, ErrStoreNotFound
		}
		return Record{}, fmt.Errorf("load store %s: %w", storeID, err)
	}
	if err := json.Unmarshal(doc, &rec); err != nil {
		return Record{}, fmt.Errorf("decode store %s: %w", storeID, err)
	}
	_ = s.Cache.SetJSON(ctx, storeCacheKey(storeID), rec)
	return rec, nil
}

// SaveStore validates and persists a store record. When logistics rates or
// the store type change, every product's derived prices are recomputed so
// stored derivations never drift from their inputs.
func (s *Service) SaveStore(ctx context.Context, rec Record) (Record, error) {
	if err := rec.Config.Validate(); err != nil {
		return Record{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	needsReprice := false
	if prev, err := s.GetStore(ctx, rec.ID); err == nil {
		needsReprice = prev.Config.StoreType != rec.Config.StoreType ||
			prev.Config.LogisticsDual != rec.Config.LogisticsDual ||
			prev.Config.AirRatePerLb != rec.Config.AirRatePerLb ||
			prev.Config.SeaRatePerLb != rec.Config.SeaRatePerLb
	} else if !errors.Is(err, ErrStoreNotFound) {
		return Record{}, err
	}

	rec.UpdatedAt = s.now()
	doc, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("encode store: %w", err)
	}
	if err := s.Records.Put(ctx, storesEntity, rec.ID, doc); err != nil {
		return Record{}, fmt.Errorf("save store %s: %w", rec.ID, err)
	}
	s.Cache.Invalidate(ctx, storeCacheKey(rec.ID))

	if needsReprice {
		if err := s.reprice(ctx, rec); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// UpsertProduct validates pricing for the store's type, refreshes derived
// prices and persists the product.
func (s *Service) UpsertProduct(ctx context.Context, storeID string, p Product) (Product, error) {
	rec, err := s.GetStore(ctx, storeID)
	if err != nil {
		return Product{}, err
	}
	derived, err := quote.Derive(p.Pricing, rec.Config)
	if err != nil {
		return Product{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Derived = derived
	p.UpdatedAt = s.now()

	doc, err := json.Marshal(p)
	if err != nil {
		return Product{}, fmt.Errorf("encode product: %w", err)
	}
	if err := s.Records.Put(ctx, productsEntity(storeID), p.ID, doc); err != nil {
		return Product{}, fmt.Errorf("save product %s: %w", p.ID, err)
	}
	s.Cache.Invalidate(ctx, productsCacheKey(storeID))
	return p, nil
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, storeID, productID string) (Product, error) {
	doc, err := s.Records.Get(ctx, productsEntity(storeID), productID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, fmt.Errorf("load product %s: %w", productID, err)
	}
	var p Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return Product{}, fmt.Errorf("decode product %s: %w", productID, err)
	}
	return p, nil
}

// DeleteProduct removes a product from the store.
func (s *Service) DeleteProduct(ctx context.Context, storeID, productID string) error {
	if err := s.Records.Delete(ctx, productsEntity(storeID), productID); err != nil {
		return fmt.Errorf("delete product %s: %w", productID, err)
	}
	s.Cache.Invalidate(ctx, productsCacheKey(storeID))
	return nil
}

// ListProducts returns the store's products sorted by name, preferring the
// cache snapshot.
func (s *Service) ListProducts(ctx context.Context, storeID string) ([]Product, error) {
	var products []Product
	if ok, err := s.Cache.GetJSON(ctx, productsCacheKey(storeID), &products); err == nil && ok {
		return products, nil
	}
	docs, err := s.Records.List(ctx, productsEntity(storeID))
	if err != nil {
		return nil, fmt.Errorf("list products for %s: %w", storeID, err)
	}
	products = make([]Product, 0, len(docs))
	for id, doc := range docs {
		var p Product
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", id, err)
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name == products[j].Name {
			return products[i].ID < products[j].ID
		}
		return products[i].Name < products[j].Name
	})
	_ = s.Cache.SetJSON(ctx, productsCacheKey(storeID), products)
	return products, nil
}

// reprice recomputes derived prices for every product under the store.
func (s *Service) reprice(ctx context.Context, rec Record) error {
	docs, err := s.Records.List(ctx, productsEntity(rec.ID))
	if err != nil {
		return fmt.Errorf("list products for reprice: %w", err)
	}
	repriced := 0
	for id, doc := range docs {
		var p Product
		if err := json.Unmarshal(doc, &p); err != nil {
			return fmt.Errorf("decode product %s: %w", id, err)
		}
		derived, err := quote.Derive(p.Pricing, rec.Config)
		if err != nil {
			return fmt.Errorf("reprice product %s: %w", id, err)
		}
		p.Derived = derived
		p.UpdatedAt = s.now()
		updated, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode product %s: %w", id, err)
		}
		if err := s.Records.Put(ctx, productsEntity(rec.ID), id, updated); err != nil {
			return fmt.Errorf("save repriced product %s: %w", id, err)
		}
		repriced++
	}
	s.Cache.Invalidate(ctx, productsCacheKey(rec.ID))
	if obs.ProductsRepricedTotal != nil {
		obs.ProductsRepricedTotal.Add(float64(repriced))
	}
	return nil
}
