package model

// Identifiable is implemented by every entity that can be used as a pagination cursor
type Identifiable interface {
	GetID() string
}

// PageInfo is the cursor information sent to the client. A nil EndCursor means
// the page is the last one.
type PageInfo struct {
	StartCursor *string `json:"startCursor"`
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// PageResult is the struct that will be sent to the client for every cursor paginated list
type PageResult[T Identifiable] struct {
	PageInfo PageInfo `json:"pageInfo"`
	Items    []T      `json:"items"`
}
