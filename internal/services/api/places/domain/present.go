package domain

import (
	"strconv"

	"tripmaker/internal/adapters/directory/tripadvisor"
	"tripmaker/internal/core/geo"
)

// renditions in preference order
var renditions = []string{"original", "large", "medium", "small", "thumbnail"}

// PlaceOf trims a details record, unparseable numbers are dropped rather than failed
func PlaceOf(d tripadvisor.Details, lang tripadvisor.Language) PlaceOut {
	out := PlaceOut{
		ID:          d.LocationID,
		Name:        d.Name,
		Description: d.Description,
		Address:     d.AddressObj.AddressString,
		Timezone:    d.Timezone,
		Website:     d.Website,
		Phone:       d.Phone,
		Email:       d.Email,
		WebURL:      d.WebURL,
		PriceLevel:  d.PriceLevel,
		Language:    lang.String(),
	}
	if p, err := geo.ParsePoint(d.Latitude, d.Longitude); err == nil {
		out.Location = &p
	}
	if d.Rating != nil {
		if v, err := strconv.ParseFloat(*d.Rating, 64); err == nil {
			out.Rating = &v
		}
	}
	if d.NumReviews != nil {
		if v, err := strconv.Atoi(*d.NumReviews); err == nil {
			out.NumReviews = &v
		}
	}
	if d.RankingData != nil {
		out.Ranking = d.RankingData.RankingString
	}
	if d.Category != nil {
		out.Category = d.Category.Name
	}
	for _, s := range d.Subcategory {
		out.Subcategory = append(out.Subcategory, s.Name)
	}
	if d.Hours != nil {
		out.Hours = d.Hours.WeekdayText
	}
	for _, a := range d.Awards {
		out.Awards = append(out.Awards, a.DisplayName)
	}
	return out
}

// PhotoOf picks the largest rendition the directory returned
func PhotoOf(p tripadvisor.Photo) PhotoOut {
	out := PhotoOut{
		ID:            p.ID,
		Caption:       p.Caption,
		Album:         p.Album,
		PublishedDate: p.PublishedDate,
		Source:        p.Source.Name,
		User:          p.User.Username,
	}
	for _, k := range renditions {
		if img, ok := p.Images[k]; ok && img.URL != "" {
			out.URL, out.Width, out.Height = img.URL, img.Width, img.Height
			break
		}
	}
	return out
}

// PhotosOf renders a page, Photos is never nil
func PhotosOf(pg tripadvisor.PhotosPage) PhotosOutput {
	out := PhotosOutput{Photos: make([]PhotoOut, 0, len(pg.Data)), Total: len(pg.Data)}
	for _, p := range pg.Data {
		out.Photos = append(out.Photos, PhotoOf(p))
	}
	if pg.Paging != nil {
		out.Total = pg.Paging.TotalResults
		out.Next = pg.Paging.Next != ""
	}
	return out
}

// ReviewOf trims one review
func ReviewOf(r tripadvisor.Review) ReviewOut {
	return ReviewOut{
		ID:                r.ID,
		Title:             r.Title,
		Text:              r.Text,
		Rating:            r.Rating,
		Language:          r.Lang,
		PublishedDate:     r.PublishedDate,
		TravelDate:        r.TravelDate,
		TripType:          r.TripType,
		HelpfulVotes:      r.HelpfulVotes,
		URL:               r.URL,
		User:              r.User.Username,
		MachineTranslated: r.IsMachineTranslated,
	}
}

// ReviewsOf renders a page, Reviews is never nil
func ReviewsOf(pg tripadvisor.ReviewsPage) ReviewsOutput {
	out := ReviewsOutput{Reviews: make([]ReviewOut, 0, len(pg.Data)), Total: len(pg.Data)}
	for _, r := range pg.Data {
		out.Reviews = append(out.Reviews, ReviewOf(r))
	}
	if pg.Paging != nil {
		out.Total = pg.Paging.TotalResults
		out.Next = pg.Paging.Next != ""
	}
	return out
}
