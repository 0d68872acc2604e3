package tripadvisor

import (
	"context"
	"net/url"
	"strconv"

	perr "tripmaker/internal/platform/errors"
)

// NearbyParams are the nearby_search query params, zero or nil fields are omitted
type NearbyParams struct {
	// LatLong is "lat,lon", see geo.Point.String
	LatLong    string
	Category   *Category
	Phone      string
	Address    string
	Radius     float64
	RadiusUnit *RadiusUnit
	Language   *Language
}

func (p NearbyParams) values() url.Values {
	q := url.Values{}
	q.Set("latLong", p.LatLong)
	if p.Category != nil {
		q.Set("category", p.Category.String())
	}
	if p.Phone != "" {
		q.Set("phone", p.Phone)
	}
	if p.Address != "" {
		q.Set("address", p.Address)
	}
	if p.Radius > 0 {
		q.Set("radius", strconv.FormatFloat(p.Radius, 'f', -1, 64))
	}
	if p.RadiusUnit != nil {
		q.Set("radiusUnit", p.RadiusUnit.String())
	}
	setLanguage(q, p.Language)
	return q
}

// DetailsParams are the details query params
type DetailsParams struct {
	Language *Language
	Currency string
}

func (p DetailsParams) values() url.Values {
	q := url.Values{}
	setLanguage(q, p.Language)
	if p.Currency != "" {
		q.Set("currency", p.Currency)
	}
	return q
}

// PhotosParams are the photos query params
type PhotosParams struct {
	Language *Language
	Limit    int
	Offset   int
	Source   *PhotoSource
}

func (p PhotosParams) values() url.Values {
	q := url.Values{}
	setLanguage(q, p.Language)
	setPage(q, p.Limit, p.Offset)
	if p.Source != nil {
		q.Set("source", p.Source.String())
	}
	return q
}

// ReviewsParams are the reviews query params
type ReviewsParams struct {
	Language *Language
	Limit    int
	Offset   int
}

func (p ReviewsParams) values() url.Values {
	q := url.Values{}
	setLanguage(q, p.Language)
	setPage(q, p.Limit, p.Offset)
	return q
}

func setLanguage(q url.Values, l *Language) {
	if l != nil {
		q.Set("language", l.String())
	}
}

func setPage(q url.Values, limit, offset int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}

// locationPath validates a numeric location id and builds /location/{id}/suffix
func locationPath(id, suffix string) (string, error) {
	if id == "" {
		return "", perr.WithField(perr.Validationf("location id is required"), "id")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", perr.WithField(perr.Validationf("location id must be numeric"), "id")
		}
	}
	return "/location/" + url.PathEscape(id) + "/" + suffix, nil
}

// NearbySearch returns up to 10 locations near p.LatLong in directory order
func (c *Client) NearbySearch(ctx context.Context, p NearbyParams) ([]Location, error) {
	if p.LatLong == "" {
		return nil, perr.WithField(perr.Validationf("latLong is required"), "latLong")
	}
	var out nearbyResponse
	if err := c.get(ctx, "nearby_search", "/location/nearby_search", p.values(), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Details fetches the full record for a location id
func (c *Client) Details(ctx context.Context, id string, p DetailsParams) (Details, error) {
	path, err := locationPath(id, "details")
	if err != nil {
		return Details{}, err
	}
	var out Details
	if err := c.get(ctx, "details", path, p.values(), &out); err != nil {
		return Details{}, err
	}
	return out, nil
}

// Photos fetches one page of photos for a location id
func (c *Client) Photos(ctx context.Context, id string, p PhotosParams) (PhotosPage, error) {
	path, err := locationPath(id, "photos")
	if err != nil {
		return PhotosPage{}, err
	}
	var out PhotosPage
	if err := c.get(ctx, "photos", path, p.values(), &out); err != nil {
		return PhotosPage{}, err
	}
	return out, nil
}

// Reviews fetches one page of reviews for a location id
func (c *Client) Reviews(ctx context.Context, id string, p ReviewsParams) (ReviewsPage, error) {
	path, err := locationPath(id, "reviews")
	if err != nil {
		return ReviewsPage{}, err
	}
	var out ReviewsPage
	if err := c.get(ctx, "reviews", path, p.values(), &out); err != nil {
		return ReviewsPage{}, err
	}
	return out, nil
}
