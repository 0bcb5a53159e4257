package pagination

// Page décrit la fenêtre de pagination d'une liste du catalogue.
// Les tags JSON correspondent à ce que le front consomme directement.
type Page struct {
	Current int  `json:"currentPage"`
	Offset  int  `json:"-"`
	Limit   int  `json:"-"`
	HasNext bool `json:"hasNextPage"`
	HasPrev bool `json:"hasPreviousPage"`
	Next    int  `json:"nextPage"`
	Prev    int  `json:"previousPage"`
	Last    int  `json:"lastPage"`
}

// Paginate calcule la fenêtre pour une page demandée. Une page absente ou
// non positive vaut 1. Aucun plafonnement au-delà de la dernière page : une
// page hors bornes donne simplement une fenêtre vide.
func Paginate(totalCount, pageSize, requestedPage int) Page {
	if requestedPage < 1 {
		requestedPage = 1
	}

	last := 0
	if pageSize > 0 {
		last = (totalCount + pageSize - 1) / pageSize
	}

	return Page{
		Current: requestedPage,
		Offset:  (requestedPage - 1) * pageSize,
		Limit:   pageSize,
		HasNext: requestedPage*pageSize < totalCount,
		HasPrev: requestedPage > 1,
		Next:    requestedPage + 1,
		Prev:    requestedPage - 1,
		Last:    last,
	}
}

// Window découpe [offset, offset+limit) dans une liste de n éléments.
func (p Page) Window(n int) (start, end int) {
	start = p.Offset
	if start > n {
		start = n
	}
	end = start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
