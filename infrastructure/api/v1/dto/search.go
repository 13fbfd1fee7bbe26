package dto

// SearchRequest is the body of POST /api/v1/search. All fields are
// optional hints; price accepts a string so lenient clients can send
// "1,280円" style values.
type SearchRequest struct {
	Name    string `json:"name,omitempty"`
	Price   string `json:"price,omitempty"`
	Brand   string `json:"brand,omitempty"`
	Keyword string `json:"keyword,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
}

// SearchResult is one scored match.
type SearchResult struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// SearchResponse is the body of the search endpoint.
type SearchResponse struct {
	Data []SearchResult `json:"data"`
}
