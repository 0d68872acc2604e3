// Package domain holds the places passthrough DTOs
package domain

import (
	"tripmaker/internal/adapters/directory/tripadvisor"
	"tripmaker/internal/core/geo"
)

// MaxPage bounds limit on photos and reviews
const MaxPage = 50

// Query is the parsed query string shared by every places endpoint
type Query struct {
	Language tripadvisor.Language
	Currency string
	Limit    int
	Offset   int
	Source   *tripadvisor.PhotoSource
}

// PlaceOut is a trimmed location record
type PlaceOut struct {
	ID          string     `json:"id" example:"187791"`
	Name        string     `json:"name" example:"Colosseum"`
	Description *string    `json:"description,omitempty"`
	Address     string     `json:"address"`
	Location    *geo.Point `json:"location,omitempty"`
	Timezone    string     `json:"timezone,omitempty" example:"Europe/Rome"`
	Website     *string    `json:"website,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	WebURL      string     `json:"web_url,omitempty"`
	Rating      *float64   `json:"rating,omitempty" example:"4.5"`
	NumReviews  *int       `json:"num_reviews,omitempty" example:"1200"`
	PriceLevel  *string    `json:"price_level,omitempty" example:"$$"`
	Ranking     string     `json:"ranking,omitempty" example:"#1 of 3,453 things to do in Rome"`
	Category    string     `json:"category,omitempty" example:"attraction"`
	Subcategory []string   `json:"subcategory,omitempty"`
	Hours       []string   `json:"hours,omitempty"`
	Awards      []string   `json:"awards,omitempty"`
	Language    string     `json:"language" example:"en"`
}

// PhotoOut is one photo with its largest rendition
type PhotoOut struct {
	ID            int    `json:"id"`
	Caption       string `json:"caption,omitempty"`
	Album         string `json:"album,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Source        string `json:"source,omitempty" example:"Traveler"`
	URL           string `json:"url"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	User          string `json:"user,omitempty"`
}

// PhotosOutput is one page of photos
type PhotosOutput struct {
	Photos []PhotoOut `json:"photos"`
	Total  int        `json:"total"`
	Next   bool       `json:"next"`
}

// ReviewOut is one traveler review
type ReviewOut struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Text              string `json:"text"`
	Rating            int    `json:"rating" example:"5"`
	Language          string `json:"language" example:"en"`
	PublishedDate     string `json:"published_date,omitempty"`
	TravelDate        string `json:"travel_date,omitempty"`
	TripType          string `json:"trip_type,omitempty"`
	HelpfulVotes      int    `json:"helpful_votes"`
	URL               string `json:"url,omitempty"`
	User              string `json:"user,omitempty"`
	MachineTranslated bool   `json:"machine_translated"`
}

// ReviewsOutput is one page of reviews
type ReviewsOutput struct {
	Reviews []ReviewOut `json:"reviews"`
	Total   int         `json:"total"`
	Next    bool        `json:"next"`
}

// QueryInput is the raw query string before enum parsing
type QueryInput struct {
	Language string `json:"language" validate:"omitempty,max=8"`
	Currency string `json:"currency" validate:"omitempty,iso4217"`
	Source   string `json:"source" validate:"omitempty,max=16"`
}
