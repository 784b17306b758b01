package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/simplyaboveaverage/multicart-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return conn
}

func strPtr(s string) *string { return &s }

func seedProducts(t *testing.T, conn *gorm.DB) {
	t.Helper()
	rows := []models.Product{
		{
			ID:              "p1",
			ProductTitle:    "Tall Straight Jeans",
			Vendor:          "American Tall",
			Price:           decimal.RequireFromString("89.00"),
			Available:       true,
			ProductURL:      "https://americantall.com/products/tall-straight-jeans",
			ProductID:       "at-100",
			VariantID:       strPtr("at-100-36"),
			PrimaryCategory: strPtr("bottoms"),
		},
		{
			ID:              "p2",
			ProductTitle:    "Longline Tee",
			Vendor:          "Amalli Talli",
			Price:           decimal.RequireFromString("34.50"),
			Available:       true,
			ProductURL:      "https://amallitalli.com/products/longline-tee",
			ProductID:       "amt-7",
			PrimaryCategory: strPtr("tops"),
		},
		{
			ID:           "p3",
			ProductTitle: "Sold Out Dress",
			Vendor:       "Amalli Talli",
			Price:        decimal.RequireFromString("120.00"),
			Available:    false,
			ProductID:    "amt-9",
		},
	}
	require.NoError(t, conn.Create(&rows).Error)
}

func TestSearchFilters(t *testing.T) {
	conn := newTestDB(t)
	seedProducts(t, conn)
	repo := NewRepository(conn)
	ctx := context.Background()

	rows, total, err := repo.Search(ctx, SearchParams{Vendor: "Amalli Talli"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	available := true
	rows, total, err = repo.Search(ctx, SearchParams{Vendor: "Amalli Talli", Available: &available})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "p2", rows[0].ID)

	rows, _, err = repo.Search(ctx, SearchParams{Query: "tall straight"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "p1", rows[0].ID)
}

func TestSearchPriceRangeAndSort(t *testing.T) {
	conn := newTestDB(t)
	seedProducts(t, conn)
	repo := NewRepository(conn)
	ctx := context.Background()

	min := decimal.RequireFromString("50")
	rows, total, err := repo.Search(ctx, SearchParams{MinPrice: &min, Sort: SortPriceAsc})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, "p1", rows[0].ID)
	require.Equal(t, "p3", rows[1].ID)
}

func TestSearchPaging(t *testing.T) {
	conn := newTestDB(t)
	seedProducts(t, conn)
	repo := NewRepository(conn)
	ctx := context.Background()

	rows, total, err := repo.Search(ctx, SearchParams{Sort: SortTitle, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 2)

	rows, _, err = repo.Search(ctx, SearchParams{Sort: SortTitle, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestVendorsDistinct(t *testing.T) {
	conn := newTestDB(t)
	seedProducts(t, conn)
	repo := NewRepository(conn)

	vendors, err := repo.Vendors(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Amalli Talli", "American Tall"}, vendors)
}

func TestFindByIDMissing(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.FindByID(context.Background(), "nope")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
