package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/iterator"

	domain "github.com/hatbazar/api/internal/domain"
	pfirestore "github.com/hatbazar/api/internal/platform/firestore"
	"github.com/hatbazar/api/internal/repositories"
)

const bannersCollection = "banners"

type bannerDocument struct {
	Alt      string `firestore:"alt"`
	ImageURL string `firestore:"imageUrl"`
	Link     string `firestore:"link"`
}

// BannerRepository persists storefront banners in Firestore.
type BannerRepository struct {
	provider *pfirestore.Provider
	banners  *pfirestore.BaseRepository[bannerDocument]
}

// NewBannerRepository constructs a Firestore-backed banner repository.
func NewBannerRepository(provider *pfirestore.Provider) (*BannerRepository, error) {
	if provider == nil {
		return nil, errors.New("banner repository requires firestore provider")
	}
	return &BannerRepository{
		provider: provider,
		banners:  pfirestore.NewBaseRepository[bannerDocument](provider, bannersCollection, nil),
	}, nil
}

// Insert stores a new banner under its document ID.
func (r *BannerRepository) Insert(ctx context.Context, banner domain.Banner) error {
	id := strings.TrimSpace(banner.ID)
	if id == "" {
		return errors.New("banner repository: banner id is required")
	}
	return r.banners.Create(ctx, id, encodeBanner(banner))
}

// Update replaces the stored banner document.
func (r *BannerRepository) Update(ctx context.Context, banner domain.Banner) error {
	id := strings.TrimSpace(banner.ID)
	if id == "" {
		return errors.New("banner repository: banner id is required")
	}
	return r.banners.Set(ctx, id, encodeBanner(banner))
}

// Delete removes the banner document.
func (r *BannerRepository) Delete(ctx context.Context, bannerID string) error {
	id := strings.TrimSpace(bannerID)
	if id == "" {
		return errors.New("banner repository: banner id is required")
	}
	return r.banners.Delete(ctx, id)
}

// FindByID loads a single banner by document ID.
func (r *BannerRepository) FindByID(ctx context.Context, bannerID string) (domain.Banner, error) {
	id := strings.TrimSpace(bannerID)
	if id == "" {
		return domain.Banner{}, errors.New("banner repository: banner id is required")
	}
	doc, err := r.banners.Get(ctx, id)
	if err != nil {
		return domain.Banner{}, err
	}
	return doc.Data.toDomain(doc.ID), nil
}

// List returns every banner.
func (r *BannerRepository) List(ctx context.Context) ([]domain.Banner, error) {
	if r == nil || r.provider == nil {
		return nil, errors.New("banner repository not initialised")
	}
	coll, err := r.banners.CollectionRef(ctx)
	if err != nil {
		return nil, err
	}

	iter := coll.Documents(ctx)
	defer iter.Stop()

	var banners []domain.Banner
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("banners.list", err)
		}
		var doc bannerDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode banner %s: %w", snap.Ref.ID, err)
		}
		banners = append(banners, doc.toDomain(snap.Ref.ID))
	}
	return banners, nil
}

func encodeBanner(banner domain.Banner) bannerDocument {
	return bannerDocument{
		Alt:      strings.TrimSpace(banner.Alt),
		ImageURL: strings.TrimSpace(banner.ImageURL),
		Link:     strings.TrimSpace(banner.Link),
	}
}

func (d bannerDocument) toDomain(id string) domain.Banner {
	return domain.Banner{
		ID:       id,
		Alt:      d.Alt,
		ImageURL: d.ImageURL,
		Link:     d.Link,
	}
}

// Ensure interface compliance.
var _ repositories.BannerRepository = (*BannerRepository)(nil)
