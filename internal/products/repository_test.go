package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/enums"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	designers := `
CREATE TABLE IF NOT EXISTS designers (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  standard_rank TEXT NOT NULL DEFAULT 'apprentice',
  foundation_rank TEXT NOT NULL DEFAULT 'none',
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  designer_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  price_cents INTEGER NOT NULL,
  image_url TEXT,
  status TEXT NOT NULL DEFAULT 'draft',
  inventory_count INTEGER NOT NULL DEFAULT 0,
  sold_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(designers).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newDesigner(t *testing.T, db *gorm.DB, name string) *models.Designer {
	t.Helper()

	designer := &models.Designer{
		ID:             uuid.New(),
		DisplayName:    name,
		StandardRank:   enums.StandardRankStylist,
		FoundationRank: enums.FoundationRankNone,
	}
	require.NoError(t, db.Create(designer).Error)
	return designer
}

func newProduct(t *testing.T, db *gorm.DB, designerID uuid.UUID, status enums.ProductStatus, inventory int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:             uuid.New(),
		DesignerID:     designerID,
		Title:          "Silk Wrap Dress",
		PriceCents:     12900,
		Status:         status,
		InventoryCount: inventory,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestFindByIDLoadsDesigner(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	designer := newDesigner(t, db, "Atelier Miro")
	created := newProduct(t, db, designer.ID, enums.ProductStatusActive, 5)

	got, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Designer)
	assert.Equal(t, "Atelier Miro", got.Designer.DisplayName)
}

func TestFindByIDNotFound(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestFindAvailableRejectsInactive(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	designer := newDesigner(t, db, "Atelier Miro")

	for _, status := range []enums.ProductStatus{enums.ProductStatusDraft, enums.ProductStatusArchived} {
		created := newProduct(t, db, designer.ID, status, 5)
		_, err := repo.FindAvailable(context.Background(), created.ID)
		require.Error(t, err)
		coded := pkgerrors.As(err)
		require.NotNil(t, coded)
		assert.Equal(t, pkgerrors.CodeProductUnavailable, coded.Code())
	}

	active := newProduct(t, db, designer.ID, enums.ProductStatusActive, 5)
	got, err := repo.FindAvailable(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)
}

func TestDecrementInventoryFloorsAtZero(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	designer := newDesigner(t, db, "Atelier Miro")
	created := newProduct(t, db, designer.ID, enums.ProductStatusActive, 3)

	require.NoError(t, repo.DecrementInventory(context.Background(), created.ID, 5))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
	assert.Equal(t, 0, reloaded.InventoryCount)
	assert.Equal(t, 5, reloaded.SoldCount)
}

func TestDecrementInventoryPartial(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	designer := newDesigner(t, db, "Atelier Miro")
	created := newProduct(t, db, designer.ID, enums.ProductStatusActive, 10)

	require.NoError(t, repo.DecrementInventory(context.Background(), created.ID, 4))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
	assert.Equal(t, 6, reloaded.InventoryCount)
	assert.Equal(t, 4, reloaded.SoldCount)
}

func TestDecrementInventoryValidation(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	err := repo.DecrementInventory(context.Background(), uuid.New(), 0)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())

	err = repo.DecrementInventory(context.Background(), uuid.New(), 1)
	require.Error(t, err)
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestListActiveSkipsDraftAndArchived(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	designer := newDesigner(t, db, "Atelier Miro")
	newProduct(t, db, designer.ID, enums.ProductStatusActive, 5)
	newProduct(t, db, designer.ID, enums.ProductStatusDraft, 5)
	newProduct(t, db, designer.ID, enums.ProductStatusArchived, 5)

	got, err := repo.ListActive(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
