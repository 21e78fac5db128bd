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

const productsCollection = "products"

type reviewDocument struct {
	Author  string `firestore:"author"`
	Rating  int    `firestore:"rating"`
	Comment string `firestore:"comment"`
}

type productDocument struct {
	Slug          string           `firestore:"slug"`
	Name          string           `firestore:"name"`
	Description   string           `firestore:"description"`
	Price         int64            `firestore:"price"`
	OriginalPrice int64            `firestore:"originalPrice,omitempty"`
	ImageURL      string           `firestore:"imageUrl"`
	Category      string           `firestore:"category"`
	Rating        float64          `firestore:"rating"`
	SoldCount     int              `firestore:"soldCount"`
	Reviews       []reviewDocument `firestore:"reviews"`
	IsHotDeal     bool             `firestore:"isHotDeal"`
}

// ProductRepository persists catalog products in Firestore.
type ProductRepository struct {
	provider *pfirestore.Provider
	products *pfirestore.BaseRepository[productDocument]
}

// NewProductRepository constructs a Firestore-backed product repository.
func NewProductRepository(provider *pfirestore.Provider) (*ProductRepository, error) {
	if provider == nil {
		return nil, errors.New("product repository requires firestore provider")
	}
	return &ProductRepository{
		provider: provider,
		products: pfirestore.NewBaseRepository[productDocument](provider, productsCollection, nil),
	}, nil
}

// Insert stores a new product under its document ID.
func (r *ProductRepository) Insert(ctx context.Context, product domain.Product) error {
	id := strings.TrimSpace(product.ID)
	if id == "" {
		return errors.New("product repository: product id is required")
	}
	return r.products.Create(ctx, id, encodeProduct(product))
}

// Update replaces the stored product document.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) error {
	id := strings.TrimSpace(product.ID)
	if id == "" {
		return errors.New("product repository: product id is required")
	}
	return r.products.Set(ctx, id, encodeProduct(product))
}

// Delete removes the product document.
func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	id := strings.TrimSpace(productID)
	if id == "" {
		return errors.New("product repository: product id is required")
	}
	return r.products.Delete(ctx, id)
}

// FindByID loads a single product by document ID.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return domain.Product{}, errors.New("product repository: product id is required")
	}
	doc, err := r.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return doc.Data.toDomain(doc.ID), nil
}

// FindBySlug loads a single product by its URL slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return domain.Product{}, errors.New("product repository: slug is required")
	}

	docs, err := r.products.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", trimmed).Limit(1)
	})
	if err != nil {
		return domain.Product{}, err
	}
	if len(docs) == 0 {
		return domain.Product{}, pfirestore.WrapError("products.find_by_slug",
			status.Errorf(codes.NotFound, "product %s not found", trimmed))
	}
	return docs[0].Data.toDomain(docs[0].ID), nil
}

// List returns products matching the filter.
func (r *ProductRepository) List(ctx context.Context, filter repositories.ProductFilter) ([]domain.Product, error) {
	if r == nil || r.provider == nil {
		return nil, errors.New("product repository not initialised")
	}
	coll, err := r.products.CollectionRef(ctx)
	if err != nil {
		return nil, err
	}

	query := coll.Query
	if filter.HotDealsOnly {
		query = query.Where("isHotDeal", "==", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category", "==", category)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []domain.Product
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("products.list", err)
		}
		var doc productDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", snap.Ref.ID, err)
		}
		products = append(products, doc.toDomain(snap.Ref.ID))
	}
	return products, nil
}

// ReplaceReviews overwrites the embedded review list of a product.
func (r *ProductRepository) ReplaceReviews(ctx context.Context, productID string, reviews []domain.Review) error {
	id := strings.TrimSpace(productID)
	if id == "" {
		return errors.New("product repository: product id is required")
	}
	docs := make([]reviewDocument, 0, len(reviews))
	for _, review := range reviews {
		docs = append(docs, reviewDocument{
			Author:  review.Author,
			Rating:  review.Rating,
			Comment: review.Comment,
		})
	}
	return r.products.Update(ctx, id, []firestore.Update{
		{Path: "reviews", Value: docs},
	}, firestore.Exists)
}

// Any reports whether at least one product document exists.
func (r *ProductRepository) Any(ctx context.Context) (bool, error) {
	docs, err := r.products.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Limit(1)
	})
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

func encodeProduct(product domain.Product) productDocument {
	reviews := make([]reviewDocument, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, reviewDocument{
			Author:  review.Author,
			Rating:  review.Rating,
			Comment: review.Comment,
		})
	}
	return productDocument{
		Slug:          strings.TrimSpace(product.Slug),
		Name:          strings.TrimSpace(product.Name),
		Description:   strings.TrimSpace(product.Description),
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		ImageURL:      strings.TrimSpace(product.ImageURL),
		Category:      strings.TrimSpace(product.Category),
		Rating:        product.Rating,
		SoldCount:     product.SoldCount,
		Reviews:       reviews,
		IsHotDeal:     product.IsHotDeal,
	}
}

func (d productDocument) toDomain(id string) domain.Product {
	reviews := make([]domain.Review, 0, len(d.Reviews))
	for _, review := range d.Reviews {
		reviews = append(reviews, domain.Review{
			Author:  review.Author,
			Rating:  review.Rating,
			Comment: review.Comment,
		})
	}
	return domain.Product{
		ID:            id,
		Slug:          d.Slug,
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		ImageURL:      d.ImageURL,
		Category:      d.Category,
		Rating:        d.Rating,
		SoldCount:     d.SoldCount,
		Reviews:       reviews,
		IsHotDeal:     d.IsHotDeal,
	}
}

// Ensure interface compliance.
var _ repositories.ProductRepository = (*ProductRepository)(nil)
