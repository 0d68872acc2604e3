package domain

import (
	"context"

	"tripmaker/internal/adapters/directory/tripadvisor"
)

// Client is the slice of the TripAdvisor client the passthrough needs
type Client interface {
	Details(ctx context.Context, id string, p tripadvisor.DetailsParams) (tripadvisor.Details, error)
	Photos(ctx context.Context, id string, p tripadvisor.PhotosParams) (tripadvisor.PhotosPage, error)
	Reviews(ctx context.Context, id string, p tripadvisor.ReviewsParams) (tripadvisor.ReviewsPage, error)
}

// ServicePort is the places contract other modules may call
type ServicePort interface {
	Place(ctx context.Context, id string, q Query) (PlaceOut, error)
	Photos(ctx context.Context, id string, q Query) (PhotosOutput, error)
	Reviews(ctx context.Context, id string, q Query) (ReviewsOutput, error)
}
