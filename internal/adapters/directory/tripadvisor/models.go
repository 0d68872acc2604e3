package tripadvisor

// Address is the directory's address_obj
type Address struct {
	Street1       string `json:"street1,omitempty"`
	Street2       string `json:"street2,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
	PostalCode    string `json:"postalcode,omitempty"`
	AddressString string `json:"address_string,omitempty"`
}

// Location is one nearby search hit
type Location struct {
	LocationID string  `json:"location_id"`
	Name       string  `json:"name"`
	Distance   string  `json:"distance"`
	Bearing    string  `json:"bearing"`
	AddressObj Address `json:"address_obj"`
}

type nearbyResponse struct {
	Data []Location `json:"data"`
}

// Name is a named and optionally localized label
type Name struct {
	Name          string `json:"name"`
	LocalizedName string `json:"localized_name,omitempty"`
}

// Group is a category group with its member categories
type Group struct {
	Name
	Categories []Name `json:"categories,omitempty"`
}

// Ancestor is a containing geo of a location
type Ancestor struct {
	Abbrv      string `json:"abbrv,omitempty"`
	Level      string `json:"level"`
	Name       string `json:"name"`
	LocationID string `json:"location_id"`
}

// RankingData is the location's rank within its geo
type RankingData struct {
	GeoLocationID   string `json:"geo_location_id"`
	RankingString   string `json:"ranking_string"`
	GeoLocationName string `json:"geo_location_name"`
	RankingOutOf    string `json:"ranking_out_of"`
	Ranking         string `json:"ranking"`
}

// DayTime is one edge of an opening period
type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Period is one opening period
type Period struct {
	Open  DayTime `json:"open"`
	Close DayTime `json:"close"`
}

// Hours are the opening hours
type Hours struct {
	Periods     []Period `json:"periods,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// TripType is a traveler type share
type TripType struct {
	Name
	Value string `json:"value"`
}

// AwardImage holds award badge urls
type AwardImage struct {
	Tiny  string `json:"tiny"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// Award is a directory award
type Award struct {
	AwardType   string     `json:"award_type"`
	Year        string     `json:"year"`
	Images      AwardImage `json:"images"`
	Categories  []string   `json:"categories,omitempty"`
	DisplayName string     `json:"display_name"`
}

// Details is the full location record from /location/{id}/details
type Details struct {
	LocationID        string            `json:"location_id"`
	Name              string            `json:"name"`
	Description       *string           `json:"description,omitempty"`
	WebURL            string            `json:"web_url,omitempty"`
	AddressObj        Address           `json:"address_obj"`
	Ancestors         []Ancestor        `json:"ancestors,omitempty"`
	Latitude          string            `json:"latitude"`
	Longitude         string            `json:"longitude"`
	Timezone          string            `json:"timezone,omitempty"`
	Email             *string           `json:"email,omitempty"`
	Phone             *string           `json:"phone,omitempty"`
	Website           *string           `json:"website,omitempty"`
	WriteReview       *string           `json:"write_review,omitempty"`
	RankingData       *RankingData      `json:"ranking_data,omitempty"`
	Rating            *string           `json:"rating,omitempty"`
	RatingImageURL    *string           `json:"rating_image_url,omitempty"`
	NumReviews        *string           `json:"num_reviews,omitempty"`
	ReviewRatingCount map[string]string `json:"review_rating_count,omitempty"`
	PhotoCount        string            `json:"photo_count,omitempty"`
	SeeAllPhotos      string            `json:"see_all_photos,omitempty"`
	PriceLevel        *string           `json:"price_level,omitempty"`
	Hours             *Hours            `json:"hours,omitempty"`
	Amenities         []string          `json:"amenities,omitempty"`
	Features          []string          `json:"features,omitempty"`
	Cuisine           []Name            `json:"cuisine,omitempty"`
	ParentBrand       *string           `json:"parent_brand,omitempty"`
	Brand             *string           `json:"brand,omitempty"`
	Category          *Name             `json:"category,omitempty"`
	Subcategory       []Name            `json:"subcategory,omitempty"`
	Groups            []Group           `json:"groups,omitempty"`
	Styles            []string          `json:"styles,omitempty"`
	NeighborhoodInfo  []Name            `json:"neighborhood_info,omitempty"`
	TripTypes         []TripType        `json:"trip_types,omitempty"`
	Awards            []Award           `json:"awards,omitempty"`
}

// Paging is the cursor block of list endpoints
type Paging struct {
	Next         string `json:"next,omitempty"`
	Previous     string `json:"previous,omitempty"`
	Results      int    `json:"results"`
	TotalResults int    `json:"total_results"`
	Skipped      int    `json:"skipped"`
}

// UserLocation is where a reviewer or uploader is from
type UserLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a reviewer or photo uploader
type User struct {
	Username      string         `json:"username"`
	UserLocation  *UserLocation  `json:"user_location,omitempty"`
	ReviewCount   int            `json:"review_count,omitempty"`
	ReviewerBadge string         `json:"reviewer_badge,omitempty"`
	Avatar        map[string]any `json:"avatar,omitempty"`
}

// ImageProps is one rendition of a photo
type ImageProps struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// Photo is one image set
type Photo struct {
	ID            int                   `json:"id"`
	IsBlessed     bool                  `json:"is_blessed"`
	Album         string                `json:"album"`
	Caption       string                `json:"caption"`
	PublishedDate string                `json:"published_date"`
	Images        map[string]ImageProps `json:"images"`
	Source        Name                  `json:"source"`
	User          User                  `json:"user"`
}

// PhotosPage is one page of photos
type PhotosPage struct {
	Data   []Photo `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}

// OwnerResponse is a management reply to a review
type OwnerResponse struct {
	ID            int    `json:"id"`
	Lang          string `json:"lang"`
	Text          string `json:"text"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
}

// Subrating is one aspect score of a review
type Subrating struct {
	Name           string  `json:"name"`
	LocalizedName  string  `json:"localized_name"`
	RatingImageURL string  `json:"rating_image_url"`
	Value          float64 `json:"value"`
}

// Review is one traveler review, Rating is 1 (terrible) to 5 (excellent)
type Review struct {
	ID                  int                  `json:"id"`
	Lang                string               `json:"lang"`
	LocationID          int                  `json:"location_id"`
	PublishedDate       string               `json:"published_date"`
	Rating              int                  `json:"rating"`
	HelpfulVotes        int                  `json:"helpful_votes"`
	RatingImageURL      string               `json:"rating_image_url"`
	URL                 string               `json:"url"`
	TripType            string               `json:"trip_type"`
	TravelDate          string               `json:"travel_date"`
	Text                string               `json:"text"`
	Title               string               `json:"title"`
	OwnerResponse       *OwnerResponse       `json:"owner_response,omitempty"`
	IsMachineTranslated bool                 `json:"is_machine_translated"`
	User                User                 `json:"user"`
	Subratings          map[string]Subrating `json:"subratings,omitempty"`
}

// ReviewsPage is one page of reviews
type ReviewsPage struct {
	Data   []Review `json:"data"`
	Paging *Paging  `json:"paging,omitempty"`
}
