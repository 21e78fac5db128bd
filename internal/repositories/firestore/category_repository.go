package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/hatbazar/api/internal/domain"
	pfirestore "github.com/hatbazar/api/internal/platform/firestore"
	"github.com/hatbazar/api/internal/repositories"
)

const categoriesCollection = "categories"

type categoryDocument struct {
	Name string `firestore:"name"`
	Slug string `firestore:"slug"`
}

// CategoryRepository persists catalog categories in Firestore.
type CategoryRepository struct {
	provider   *pfirestore.Provider
	categories *pfirestore.BaseRepository[categoryDocument]
}

// NewCategoryRepository constructs a Firestore-backed category repository.
func NewCategoryRepository(provider *pfirestore.Provider) (*CategoryRepository, error) {
	if provider == nil {
		return nil, errors.New("category repository requires firestore provider")
	}
	return &CategoryRepository{
		provider:   provider,
		categories: pfirestore.NewBaseRepository[categoryDocument](provider, categoriesCollection, nil),
	}, nil
}

// Upsert stores or replaces the category document.
func (r *CategoryRepository) Upsert(ctx context.Context, category domain.Category) error {
	id := strings.TrimSpace(category.ID)
	if id == "" {
		return errors.New("category repository: category id is required")
	}
	return r.categories.Set(ctx, id, categoryDocument{
		Name: strings.TrimSpace(category.Name),
		Slug: strings.TrimSpace(category.Slug),
	})
}

// Delete removes the category document.
func (r *CategoryRepository) Delete(ctx context.Context, categoryID string) error {
	id := strings.TrimSpace(categoryID)
	if id == "" {
		return errors.New("category repository: category id is required")
	}
	return r.categories.Delete(ctx, id)
}

// FindBySlug loads a category by its URL slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (domain.Category, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return domain.Category{}, errors.New("category repository: slug is required")
	}

	docs, err := r.categories.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", trimmed).Limit(1)
	})
	if err != nil {
		return domain.Category{}, err
	}
	if len(docs) == 0 {
		return domain.Category{}, pfirestore.WrapError("categories.find_by_slug",
			status.Errorf(codes.NotFound, "category %s not found", trimmed))
	}
	return docs[0].Data.toDomain(docs[0].ID), nil
}

// List returns every category ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if r == nil || r.provider == nil {
		return nil, errors.New("category repository not initialised")
	}
	coll, err := r.categories.CollectionRef(ctx)
	if err != nil {
		return nil, err
	}

	iter := coll.OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var categories []domain.Category
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("categories.list", err)
		}
		var doc categoryDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode category %s: %w", snap.Ref.ID, err)
		}
		categories = append(categories, doc.toDomain(snap.Ref.ID))
	}
	return categories, nil
}

func (d categoryDocument) toDomain(id string) domain.Category {
	return domain.Category{
		ID:   id,
		Name: d.Name,
		Slug: d.Slug,
	}
}

// Ensure interface compliance.
var _ repositories.CategoryRepository = (*CategoryRepository)(nil)
