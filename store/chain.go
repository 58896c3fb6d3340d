package store

// Chain is a stored conversation record. Content holds the uploaded
// conversation transcript as a serialized JSON document; the store never
// inspects it beyond well-formedness checks done at the API boundary.
type Chain struct {
	ID         int32
	Name       string
	Content    string // JSON string
	IsFavorite bool
	CreatedTs  int64
}

type FindChain struct {
	ID *int32

	// Pagination
	Limit  *int
	Offset *int
}

type UpdateChain struct {
	ID         int32
	IsFavorite *bool
}

type DeleteChain struct {
	ID int32
}
