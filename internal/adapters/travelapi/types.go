package travelapi

// Destination is a browsable destination as returned by the remote API.
type Destination struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Country        string   `json:"country"`
	CityCode       string   `json:"cityCode"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Highlights     []string `json:"highlights,omitempty"`
	BestTime       string   `json:"bestTime,omitempty"`
	AvgFlightPrice string   `json:"avgFlightPrice,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Slug           string   `json:"slug"`
}

// Guide is a featured travel guide.
type Guide struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Excerpt  string   `json:"excerpt"`
	Image    string   `json:"image"`
	Author   string   `json:"author"`
	ReadTime string   `json:"readTime,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Slug     string   `json:"slug"`
}

// SocialPost is one entry of a social feed.
type SocialPost struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Image     string `json:"image,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Likes     int    `json:"likes,omitempty"`
	Permalink string `json:"permalink,omitempty"`
	PostedAt  string `json:"postedAt,omitempty"`
}

type FlightSearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Adults        int    `json:"adults"`
	CabinClass    string `json:"cabinClass,omitempty"`
}

type FlightOffer struct {
	ID            string `json:"id"`
	Carrier       string `json:"carrier"`
	FlightNumber  string `json:"flightNumber"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Stops         int    `json:"stops"`
	Price         string `json:"price"`
	Currency      string `json:"currency,omitempty"`
}

type HotelSearchRequest struct {
	Destination string `json:"destination"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	Guests      int    `json:"guests"`
	Rooms       int    `json:"rooms"`
}

type HotelOffer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Rating        float64 `json:"rating,omitempty"`
	PricePerNight string  `json:"pricePerNight"`
	Currency      string  `json:"currency,omitempty"`
	Image         string  `json:"image,omitempty"`
}
