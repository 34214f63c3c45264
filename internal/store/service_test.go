package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/emprendia/backend-tienda/internal/quote"
	"github.com/emprendia/backend-tienda/internal/record"
	"github.com/emprendia/backend-tienda/internal/store"
)

func newService(t *testing.T) *store.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &store.Service{
		Records: record.NewMemory(),
		Cache:   store.NewCache(client, time.Minute),
	}
}

func byOrderConfig() quote.StoreConfig {
	return quote.StoreConfig{
		StoreType:     quote.StoreByOrder,
		LogisticsDual: true,
		AirRatePerLb:  5.5,
		SeaRatePerLb:  3.0,
		Currency:      quote.USD,
		Delivery:      quote.Delivery{Type: quote.DeliveryNone},
		Payment:       quote.PaymentPolicy{AcceptsFullPayment: true},
	}
}

func TestSaveStoreRejectsInvalidConfig(t *testing.T) {
	svc := newService(t)
	cfg := byOrderConfig()
	cfg.AirRatePerLb = -1
	_, err := svc.SaveStore(context.Background(), store.Record{Name: "Tienda", Config: cfg})
	require.ErrorIs(t, err, quote.ErrNegativeAmount)
}

func TestSaveAndGetStoreRoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	saved, err := svc.SaveStore(ctx, store.Record{Name: "Tienda", Config: byOrderConfig()})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := svc.GetStore(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Tienda", got.Name)
	require.Equal(t, quote.StoreByOrder, got.Config.StoreType)

	_, err = svc.GetStore(ctx, "nope")
	require.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestUpsertProductDerivesPrices(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	rec, err := svc.SaveStore(ctx, store.Record{Name: "Tienda", Config: byOrderConfig()})
	require.NoError(t, err)

	p, err := svc.UpsertProduct(ctx, rec.ID, store.Product{
		Name: "Zapatos",
		Pricing: quote.ProductPricing{
			BaseCost: 10, WeightLb: 2,
			MarginType: quote.MarginFixed, MarginValue: 5,
		},
	})
	require.NoError(t, err)
	require.InDelta(t, 26.0, p.Derived.FinalPriceAir, 1e-9)
	require.InDelta(t, 21.0, p.Derived.FinalPriceSea, 1e-9)
}

func TestUpsertProductRejectsBadPricing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	rec, err := svc.SaveStore(ctx, store.Record{Name: "Tienda", Config: byOrderConfig()})
	require.NoError(t, err)

	_, err = svc.UpsertProduct(ctx, rec.ID, store.Product{
		Name:    "Roto",
		Pricing: quote.ProductPricing{BaseCost: -5, MarginType: quote.MarginFixed},
	})
	require.ErrorIs(t, err, quote.ErrNegativeAmount)
}

func TestRateChangeReprices(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	rec, err := svc.SaveStore(ctx, store.Record{Name: "Tienda", Config: byOrderConfig()})
	require.NoError(t, err)

	p, err := svc.UpsertProduct(ctx, rec.ID, store.Product{
		Name: "Zapatos",
		Pricing: quote.ProductPricing{
			BaseCost: 10, WeightLb: 2,
			MarginType: quote.MarginFixed, MarginValue: 5,
		},
	})
	require.NoError(t, err)
	require.InDelta(t, 26.0, p.Derived.FinalPriceAir, 1e-9)

	cfg := rec.Config
	cfg.AirRatePerLb = 7.0
	rec.Config = cfg
	_, err = svc.SaveStore(ctx, rec)
	require.NoError(t, err)

	// Stored derivation must equal the derivation of current inputs.
	updated, err := svc.GetProduct(ctx, rec.ID, p.ID)
	require.NoError(t, err)
	require.InDelta(t, 10+2*7.0+5, updated.Derived.FinalPriceAir, 1e-9)
}

func TestListProductsSortedAndCached(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	rec, err := svc.SaveStore(ctx, store.Record{Name: "Tienda", Config: byOrderConfig()})
	require.NoError(t, err)

	for _, name := range []string{"Mochila", "Audífonos", "Zapatos"} {
		_, err := svc.UpsertProduct(ctx, rec.ID, store.Product{
			Name:    name,
			Pricing: quote.ProductPricing{BaseCost: 1, MarginType: quote.MarginFixed},
		})
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, "Audífonos", products[0].Name)
	require.Equal(t, "Zapatos", products[2].Name)

	// Second read comes from cache and must agree.
	cached, err := svc.ListProducts(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, products, cached)
}

func TestDeleteProduct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	rec, err := svc.SaveStore(ctx, store.Record{Name: "Tienda", Config: byOrderConfig()})
	require.NoError(t, err)

	p, err := svc.UpsertProduct(ctx, rec.ID, store.Product{
		Name:    "Efímero",
		Pricing: quote.ProductPricing{BaseCost: 1, MarginType: quote.MarginFixed},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, rec.ID, p.ID))
	_, err = svc.GetProduct(ctx, rec.ID, p.ID)
	require.ErrorIs(t, err, store.ErrProductNotFound)
}
