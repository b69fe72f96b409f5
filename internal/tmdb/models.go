package tmdb

// Result represents a single TMDB search match.
type Result struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

// MovieDetails is the subset of /movie/{id} used for statistics.
// Runtime and poster_path are null for sparse entries and decode to zero values.
type MovieDetails struct {
	ID          int64   `json:"id" validate:"gt=0"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime" validate:"gte=0"`
	VoteAverage float64 `json:"vote_average" validate:"gte=0,lte=10"`
	VoteCount   int64   `json:"vote_count" validate:"gte=0"`
	PosterPath  string  `json:"poster_path"`
	Genres      []Genre `json:"genres" validate:"dive"`
}

// CastMember is one billed performer.
type CastMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is one crew credit; Job distinguishes directors from other roles.
type CrewMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits is the /movie/{id}/credits payload. Either list may be absent.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast,omitempty"`
	Crew []CrewMember `json:"crew,omitempty"`
}

// ImageConfiguration describes where TMDB hosts images.
type ImageConfiguration struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	PosterSizes   []string `json:"poster_sizes"`
}

type configurationResponse struct {
	Images ImageConfiguration `json:"images"`
}
