package search

// Result is a single memo search hit returned to the caller.
type Result struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	OwnerID       string `json:"ownerId"`
	OwnerUsername string `json:"ownerUsername"`
	AccessType    string `json:"accessType"`
}

// Query describes a search request. UserID scopes results to memos the user
// owns or holds an accepted share on.
type Query struct {
	Text   string
	UserID string
	Limit  int
	Offset int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a full-text search over memos.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// Indexer can push memos into a search index.
type Indexer interface {
	IndexMemo(m MemoRecord) error
	DeleteMemo(id string) error
}

// MemoRecord is the data we index per memo. SharedWith carries the user ids
// holding accepted shares so access filtering happens inside the engine.
type MemoRecord struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	OwnerID       string   `json:"ownerId"`
	OwnerUsername string   `json:"ownerUsername"`
	SharedWith    []string `json:"sharedWith"`
}
