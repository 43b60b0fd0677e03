package services

import (
	"fmt"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/media"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// MediaService handles product image uploads: on-disk processing into
// sized WebP derivatives, attaching the result to the product record,
// and the fragment invalidation that follows any product change.
type MediaService struct {
	processor *media.ImageProcessor
	catalog   *CatalogService
}

// NewMediaService creates a new media service.
func NewMediaService(processor *media.ImageProcessor, catalogService *CatalogService) *MediaService {
	return &MediaService{processor: processor, catalog: catalogService}
}

// AddProductImage processes a base64 upload and appends it to the
// product's image list.
func (s *MediaService) AddProductImage(storeCtx *tenant.Context, productID, data, alt string) (*catalog.ProductImage, error) {
	product, err := s.catalog.GetProduct(storeCtx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %s", productID)
	}

	url, variants, err := s.processor.ProcessProductImage(data, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to process product image: %w", err)
	}

	image := &catalog.ProductImage{
		ID:       security.GenerateULID(),
		Alt:      alt,
		URL:      url,
		Variants: variants,
	}
	product.Images = append(product.Images, image)

	if err := s.catalog.UpdateProduct(storeCtx, product); err != nil {
		if cleanupErr := s.processor.DeleteProductImage(url); cleanupErr != nil {
			storeCtx.Logger.Media().Warn("Failed to clean up orphaned image",
				"error", cleanupErr.Error(), "url", url)
		}
		return nil, err
	}
	return image, nil
}

// RemoveProductImage detaches an image from the product and deletes
// its files. A missing file is not an error; the detach is what counts.
func (s *MediaService) RemoveProductImage(storeCtx *tenant.Context, productID, imageID string) error {
	product, err := s.catalog.GetProduct(storeCtx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product not found: %s", productID)
	}

	var removed *catalog.ProductImage
	kept := product.Images[:0]
	for _, img := range product.Images {
		if img.ID == imageID {
			removed = img
			continue
		}
		kept = append(kept, img)
	}
	if removed == nil {
		return fmt.Errorf("image not found: %s", imageID)
	}
	product.Images = kept

	if err := s.catalog.UpdateProduct(storeCtx, product); err != nil {
		return err
	}

	if err := s.processor.DeleteProductImage(removed.URL); err != nil {
		storeCtx.Logger.Media().Warn("Failed to delete image files",
			"error", err.Error(), "url", removed.URL)
	}
	return nil
}

// UploadBrandingAsset stores a store branding file (logo, favicon)
// without derivative generation.
func (s *MediaService) UploadBrandingAsset(storeCtx *tenant.Context, data, filename string) (string, error) {
	url, err := s.processor.ProcessBase64Image(data, filename, "branding/"+storeCtx.StoreID)
	if err != nil {
		return "", fmt.Errorf("failed to store branding asset: %w", err)
	}
	return url, nil
}
