package tripadvisor

import (
	"context"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/place"
	perr "tripmaker/internal/platform/errors"
)

// Directory adapts Client to the discovery loop's place directory port
type Directory struct {
	client   *Client
	defaults DirectoryDefaults
}

// NewDirectory wraps c, a zero Currency sends none
func NewDirectory(c *Client, d DirectoryDefaults) *Directory {
	if c == nil {
		panic("tripadvisor: nil client")
	}
	return &Directory{client: c, defaults: d}
}

// Client exposes the underlying client for photo and review passthrough
func (d *Directory) Client() *Client { return d.client }

// NearbySearch searches around point with the radius sent in kilometers
func (d *Directory) NearbySearch(ctx context.Context, point geo.Point, radius geo.Distance, category place.Category) ([]place.Candidate, error) {
	unit := RadiusKm
	lang := d.defaults.Language
	locs, err := d.client.NearbySearch(ctx, NearbyParams{
		LatLong:    point.String(),
		Category:   &category,
		Radius:     radius.Km(),
		RadiusUnit: &unit,
		Language:   &lang,
	})
	if err != nil {
		return nil, err
	}
	out := make([]place.Candidate, 0, len(locs))
	for _, l := range locs {
		out = append(out, place.Candidate{
			ID:           l.LocationID,
			Name:         l.Name,
			DistanceText: l.Distance,
			BearingText:  l.Bearing,
			Address:      l.AddressObj.AddressString,
		})
	}
	return out, nil
}

// Details fetches and projects one location, unparseable coordinates are an upstream error
func (d *Directory) Details(ctx context.Context, id string) (place.Detail, error) {
	lang := d.defaults.Language
	det, err := d.client.Details(ctx, id, DetailsParams{Language: &lang, Currency: d.defaults.Currency})
	if err != nil {
		return place.Detail{}, err
	}
	return ToPlace(det)
}

// ToPlace projects a wire record into the directory neutral shape
func ToPlace(det Details) (place.Detail, error) {
	loc, err := geo.ParsePoint(det.Latitude, det.Longitude)
	if err != nil {
		return place.Detail{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUpstream, "location %s has unusable coordinates", det.LocationID), "details")
	}
	out := place.Detail{
		ID:          det.LocationID,
		Name:        det.Name,
		Description: det.Description,
		Website:     det.Website,
		RatingRaw:   det.Rating,
		Address:     det.AddressObj.AddressString,
		Location:    loc,
		WebURL:      det.WebURL,
	}
	if det.Category != nil {
		out.Category = det.Category.Name
	}
	for _, s := range det.Subcategory {
		out.Subcategories = append(out.Subcategories, s.Name)
	}
	for _, g := range det.Groups {
		out.Groups = append(out.Groups, g.Name.Name)
	}
	return out, nil
}
