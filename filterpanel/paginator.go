package filterpanel

// DefaultPageSize is the number of cards per page when none is given.
const DefaultPageSize = 20

// Paginator is one page of the visible cards with the links around it.
type Paginator struct {
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	NextPage    int    `json:"nextPage"`
	PrevPage    int    `json:"prevPage"`
	PageSize    int    `json:"pageSize"`
	HasNext     bool   `json:"hasNext"`
	HasPrev     bool   `json:"hasPrev"`
	HasPosts    bool   `json:"hasPosts"`
	TotalPosts  int    `json:"totalPosts"`
	Posts       []Card `json:"posts"` // Posts are the cards on the current page
}

// NewPaginator returns page currentPage (1-based) of cards. Out of range pages are clamped.
func NewPaginator(cards []Card, currentPage, pageSize int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(cards)
	totalPages := (total + pageSize - 1) / pageSize

	if currentPage > totalPages {
		currentPage = totalPages
	}
	if currentPage < 1 {
		currentPage = 1
	}

	nextPage := currentPage + 1
	prevPage := currentPage - 1
	hasNext := currentPage < totalPages
	hasPrev := currentPage > 1

	if nextPage > totalPages {
		nextPage = max(totalPages, 1)
	}

	if prevPage < 1 {
		prevPage = 1
	}

	start := min((currentPage-1)*pageSize, total)
	end := min(start+pageSize, total)
	posts := make([]Card, end-start)
	copy(posts, cards[start:end])

	return Paginator{
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		NextPage:    nextPage,
		PrevPage:    prevPage,
		PageSize:    pageSize,
		HasNext:     hasNext,
		HasPrev:     hasPrev,
		HasPosts:    len(posts) > 0,
		TotalPosts:  total,
		Posts:       posts,
	}
}

// Page returns page currentPage of the visible cards.
func (p *Panel) Page(currentPage, pageSize int) Paginator {
	return NewPaginator(p.VisibleCards(), currentPage, pageSize)
}
