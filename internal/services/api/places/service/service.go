// Package service passes place details, photos and reviews through from the directory
package service

import (
	"context"

	"tripmaker/internal/adapters/directory/tripadvisor"
	"tripmaker/internal/services/api/places/domain"
)

// Service defines the places service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the places service
type Svc struct {
	Client domain.Client

	// Currency is sent when a query names none
	Currency string
}

// New constructs a places service
func New(c domain.Client, currency string) *Svc {
	if c == nil {
		panic("places.Service requires a non nil Client")
	}
	return &Svc{Client: c, Currency: currency}
}

// Place returns a trimmed details record
func (s *Svc) Place(ctx context.Context, id string, q domain.Query) (domain.PlaceOut, error) {
	cur := q.Currency
	if cur == "" {
		cur = s.Currency
	}
	lang := q.Language
	d, err := s.Client.Details(ctx, id, tripadvisor.DetailsParams{Language: &lang, Currency: cur})
	if err != nil {
		return domain.PlaceOut{}, err
	}
	return domain.PlaceOf(d, lang), nil
}

// Photos returns one page of photos
func (s *Svc) Photos(ctx context.Context, id string, q domain.Query) (domain.PhotosOutput, error) {
	lang := q.Language
	pg, err := s.Client.Photos(ctx, id, tripadvisor.PhotosParams{Language: &lang, Limit: q.Limit, Offset: q.Offset, Source: q.Source})
	if err != nil {
		return domain.PhotosOutput{}, err
	}
	return domain.PhotosOf(pg), nil
}

// Reviews returns one page of reviews
func (s *Svc) Reviews(ctx context.Context, id string, q domain.Query) (domain.ReviewsOutput, error) {
	lang := q.Language
	pg, err := s.Client.Reviews(ctx, id, tripadvisor.ReviewsParams{Language: &lang, Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		return domain.ReviewsOutput{}, err
	}
	return domain.ReviewsOf(pg), nil
}
