package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type CatalogService struct {
	DB    *sqlx.DB
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Inv   *repos.InventoryRepo
}

func NewCatalogService(db *sqlx.DB) *CatalogService {
	return &CatalogService{
		DB:    db,
		Cats:  repos.NewCategoryRepo(db),
		Prods: repos.NewProductRepo(db),
		Inv:   repos.NewInventoryRepo(db),
	}
}

// ProductInput is a full product write. ProductPatch leaves nil fields untouched.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Colors      []string
	CategoryID  string
}

type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Colors      []string
	CategoryID  *string
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("name is required")
	}
	taken, err := s.Cats.NameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict("category name already exists")
	}
	c := &domain.Category{ID: uuid.NewString(), Name: name}
	if err := s.Cats.Create(ctx, c); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, domain.Conflict("category name already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.ProductDetail, error) {
	return s.Prods.List(ctx)
}

// GetProduct returns a live product; soft-deleted rows are reported as not found.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.ProductDetail, error) {
	p, err := s.Prods.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("product not found")
	}
	return p, nil
}

// CreateProduct stores the product together with an empty inventory row.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.ProductDetail, error) {
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Colors:      in.Colors,
	}
	err := repos.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		if err := s.Prods.WithTx(tx).Create(ctx, p); err != nil {
			return err
		}
		_, err := s.Inv.WithTx(tx).Upsert(ctx, p.ID, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.ProductDetail, error) {
	cur, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p := cur.Product
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Colors != nil {
		p.Colors = patch.Colors
	}
	if patch.CategoryID != nil && *patch.CategoryID != p.CategoryID {
		if err := s.requireCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *patch.CategoryID
	}
	ok, err := s.Prods.Update(ctx, &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("product not found")
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct flags the product as deleted and returns the stored row.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	ok, err := s.Prods.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("product not found")
	}
	return s.Prods.GetAny(ctx, id)
}

func (s *CatalogService) requireCategory(ctx context.Context, id string) error {
	c, err := s.Cats.Get(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Validation("category %q does not exist", id)
	}
	return nil
}
