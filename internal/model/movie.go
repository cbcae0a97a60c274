package model

// Movie status values stored in movies.status. A movie is "available"
// when it can be rented, "pending" while a rental request is being
// processed and "offline" when it is withdrawn from the catalogue.
const (
	MovieAvailable = "available"
	MoviePending   = "pending"
	MovieOffline   = "offline"
)

// Movie mirrors the `movies` table. PosterPath is nil until a poster has
// been uploaded for the movie.
type Movie struct {
	ID         uint64  `json:"id"`
	Title      string  `json:"title"`
	Year       int     `json:"year"`
	Genre      string  `json:"genre"`
	Rating     float64 `json:"rating"`
	Status     string  `json:"status"`
	PosterPath *string `json:"posterPath,omitempty"`
}
