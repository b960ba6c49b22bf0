package model

// SearchKind tags a search result with the resource it came from.
type SearchKind string

const (
	SearchKindUser     SearchKind = "user"
	SearchKindTask     SearchKind = "task"
	SearchKindDocument SearchKind = "document"
)

// SearchResult is an ephemeral projection of a matched entity, built
// fresh for each query and never persisted.
type SearchResult struct {
	Kind     SearchKind
	ID       string
	Title    string
	Subtitle string

	// Link is the list view to navigate to on selection.
	Link string
}
