package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/storage"
	"shopapi/internal/validation"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const imageDir = "images"

// ProductInput is the raw product form. Numeric fields stay strings until
// they pass validation.
type ProductInput struct {
	Name        string
	Description string
	Qty         string
	Price       string
	Image       *models.Upload
}

// ProductOption configures a ProductService.
type ProductOption func(*ProductService)

// WithPruneReplacedImages makes Update delete the previous image once a
// replacement has been stored and the record updated.
func WithPruneReplacedImages(prune bool) ProductOption {
	return func(s *ProductService) { s.pruneReplaced = prune }
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo          repositories.ProductRepository
	assets        storage.AssetStore
	validator     *validation.Validator
	events        EventPublisher
	log           *zap.Logger
	pruneReplaced bool
}

// NewProductService creates a new ProductService.
func NewProductService(
	repo repositories.ProductRepository,
	assets storage.AssetStore,
	validator *validation.Validator,
	events EventPublisher,
	log *zap.Logger,
	opts ...ProductOption,
) *ProductService {
	s := &ProductService{
		repo:      repo,
		assets:    assets,
		validator: validator,
		events:    events,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events == nil {
		s.events = NopPublisher{}
	}
	return s
}

// List returns every product in insertion order.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create validates the form, stores the image and inserts the product. If
// the insert fails the stored image is removed again.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.validator.Validate(ctx, in.validationInput(), productRules(true)); err != nil {
		return nil, err
	}

	product := &models.Product{}
	if err := in.applyTo(product); err != nil {
		return nil, err
	}

	path, err := s.assets.Put(ctx, imageDir, normaliseUpload(in.Image))
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	product.Image = path

	if err := s.repo.Create(ctx, product); err != nil {
		s.discardAsset(ctx, path)
		return nil, err
	}

	s.publish(ctx, EventProductCreated, product.ID)
	return product, nil
}

// Update fully replaces the product fields. The image only changes when a
// new one is supplied.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(ctx, in.validationInput(), productRules(false)); err != nil {
		return nil, err
	}

	previousImage := product.Image
	if err := in.applyTo(product); err != nil {
		return nil, err
	}

	var newImage string
	if in.Image != nil {
		newImage, err = s.assets.Put(ctx, imageDir, normaliseUpload(in.Image))
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		product.Image = newImage
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if newImage != "" {
			s.discardAsset(ctx, newImage)
		}
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// The replaced image is kept unless pruning is enabled: callers may still
	// reference the old path.
	if newImage != "" && previousImage != "" && s.pruneReplaced {
		s.discardAsset(ctx, previousImage)
	}

	s.publish(ctx, EventProductUpdated, product.ID)
	return product, nil
}

// Delete removes the product's image and then the product itself. The
// image removal is not rolled back if the record deletion fails.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if product.Image != "" {
		if err := s.assets.Delete(ctx, product.Image); err != nil {
			return fmt.Errorf("failed to delete image: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.publish(ctx, EventProductDeleted, id)
	return nil
}

func (s *ProductService) discardAsset(ctx context.Context, path string) {
	if err := s.assets.Delete(ctx, path); err != nil {
		s.log.Error("failed to discard asset", zap.String("path", path), zap.Error(err))
	}
}

func (s *ProductService) publish(ctx context.Context, eventType, id string) {
	event := Event{Type: eventType, ID: id, OccurredAt: time.Now().UTC()}
	if err := s.events.Publish(ctx, eventType, event); err != nil {
		s.log.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func (in ProductInput) validationInput() validation.Input {
	input := validation.Input{
		"name":        in.Name,
		"description": in.Description,
		"qty":         in.Qty,
		"price":       in.Price,
	}
	if in.Image != nil {
		input["image"] = in.Image
	}
	return input
}

// applyTo copies the validated fields onto product.
func (in ProductInput) applyTo(product *models.Product) error {
	qty, err := strconv.Atoi(strings.TrimSpace(in.Qty))
	if err != nil {
		return fmt.Errorf("invalid qty: %w", err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	product.Name = strings.TrimSpace(in.Name)
	product.Description = strings.TrimSpace(in.Description)
	product.Qty = qty
	product.Price = price
	return nil
}

// normaliseUpload names the stored file after its sniffed type, so the
// extension on disk always matches the content.
func normaliseUpload(upload *models.Upload) *models.Upload {
	ext := mimetype.Detect(upload.Data).Extension()
	return &models.Upload{Filename: "image" + ext, Data: upload.Data}
}
