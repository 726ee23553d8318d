// Package ingest normalizes externally supplied images into provider-ready
// tokens and drives the detect-ingredients round trip.
package ingest

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
	"github.com/snapcook/snapcook/internal/roster"
)

// Normalize strips any embedded data-URI header from an encoded image,
// leaving the raw base64 payload as the portable token.
func Normalize(token string) domain.EncodedImage {
	if strings.HasPrefix(token, "data:") {
		if idx := strings.Index(token, ","); idx != -1 {
			return domain.EncodedImage(token[idx+1:])
		}
	}
	return domain.EncodedImage(token)
}

// LoadFile reads a user-selected image file into an encoded token.
func LoadFile(path string) (domain.EncodedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image file: %w", err)
	}
	return domain.EncodedImage(base64.StdEncoding.EncodeToString(data)), nil
}

// Ingestor forwards image batches to the provider gateway and merges the
// detected names into the roster.
type Ingestor struct {
	gateway domain.Provider
	roster  *roster.Roster
	log     *logger.Logger
}

// New creates an ingestor over the given gateway and roster.
func New(gateway domain.Provider, r *roster.Roster, log *logger.Logger) *Ingestor {
	return &Ingestor{gateway: gateway, roster: r, log: log}
}

// Ingest submits the ordered batch for detection and appends one new
// ingredient per detected name to the roster. The roster is left untouched
// on any failure.
func (in *Ingestor) Ingest(ctx context.Context, images []domain.EncodedImage) ([]domain.Ingredient, error) {
	if len(images) == 0 {
		return nil, domain.ErrNoImages
	}

	names, err := in.gateway.DetectIngredients(ctx, images)
	if err != nil {
		return nil, err
	}

	added := in.roster.MergeDetected(names)
	in.log.Info("ingest: %d images -> %d new ingredients", len(images), len(added))
	return added, nil
}
