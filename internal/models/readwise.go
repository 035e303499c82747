package models

// ExportPage represents one page of the Readwise export endpoint response
type ExportPage struct {
	Results        []Book  `json:"results"`
	NextPageCursor *string `json:"nextPageCursor"`
}

// HasNext reports whether the server announced another page
func (p *ExportPage) HasNext() bool {
	return p.NextPageCursor != nil && *p.NextPageCursor != ""
}

// Book represents one source document together with its highlights
type Book struct {
	ID         int         `json:"user_book_id"`
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	Category   string      `json:"category"`
	SourceURL  string      `json:"source_url"`
	Summary    string      `json:"summary"`
	Highlights []Highlight `json:"highlights"`
}

// Highlight represents a single saved excerpt within a book
type Highlight struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Note        string `json:"note"`
	URL         string `json:"url"`
	ReadwiseURL string `json:"readwise_url"`
	UpdatedAt   string `json:"updated_at"` // ISO-8601
}
