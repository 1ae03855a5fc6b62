package category

import "time"

// Category is a menu grouping (e.g. "Biryani"). Image holds an inline
// data URI. SortOrder is a dense index assigned on every reorder; lists
// are ordered by SortOrder ascending with newer categories winning ties.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
