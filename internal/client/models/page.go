package models

// Page is one fetched slice of a larger ordered collection.
//
// Invariants maintained by the server and relied upon by the client:
// First == (Number == 0), Last == (Number == TotalPages-1), and
// len(Content) <= Size.
type Page[T any] struct {
	Content    []T  `json:"content"`
	Number     int  `json:"number"`
	Size       int  `json:"size"`
	First      bool `json:"first"`
	Last       bool `json:"last"`
	TotalPages int  `json:"totalPages"`
}

// EmptyPage is the pre-load state of a listing: no content, page 0.
// Both boundary flags are set so navigation stays disabled until the
// first load replaces the whole value.
func EmptyPage[T any](size int) Page[T] {
	return Page[T]{Content: []T{}, Number: 0, Size: size, First: true, Last: true}
}
