package pagination

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultSize = 20
	MaxSize     = 2000

	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
)

var (
	ErrInvalidPage = errors.New("page is invalid")
	ErrInvalidSize = errors.New("size is invalid")
	ErrInvalidSort = errors.New("sort is invalid")
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is a sort clause; Property is already resolved to a column.
type Order struct {
	Property  string
	Direction Direction
}

// Pageable describes the requested slice of a collection. Page is zero-based.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// ParseQuery reads page, size and sort from query values.
// allowedSort maps the public property name to its column.
func ParseQuery(q url.Values, allowedSort map[string]string) (Pageable, error) {
	p := Pageable{Page: 0, Size: DefaultSize}
	var err error
	if pageParam := q.Get("page"); pageParam != "" {
		if p.Page, err = strconv.Atoi(pageParam); err != nil || p.Page < 0 {
			return Pageable{}, ErrInvalidPage
		}
	}
	if sizeParam := q.Get("size"); sizeParam != "" {
		if p.Size, err = strconv.Atoi(sizeParam); err != nil || p.Size < 1 {
			return Pageable{}, ErrInvalidSize
		}
		if p.Size > MaxSize {
			p.Size = MaxSize
		}
	}
	// offset and the next page index must stay representable
	if p.Page >= math.MaxInt/p.Size {
		return Pageable{}, ErrInvalidPage
	}
	for _, s := range q["sort"] {
		order, err := parseOrder(s, allowedSort)
		if err != nil {
			return Pageable{}, err
		}
		p.Sort = append(p.Sort, order)
	}
	return p, nil
}

func parseOrder(s string, allowedSort map[string]string) (Order, error) {
	parts := strings.Split(s, ",")
	column, ok := allowedSort[strings.TrimSpace(parts[0])]
	if !ok {
		return Order{}, errors.Wrapf(ErrInvalidSort, "unknown property %q", parts[0])
	}
	order := Order{Property: column, Direction: Asc}
	switch len(parts) {
	case 1:
	case 2:
		switch Direction(strings.ToLower(strings.TrimSpace(parts[1]))) {
		case Asc:
		case Desc:
			order.Direction = Desc
		default:
			return Order{}, errors.Wrapf(ErrInvalidSort, "unknown direction %q", parts[1])
		}
	default:
		return Order{}, ErrInvalidSort
	}
	return order, nil
}

// TotalPages returns the number of pages of size p.Size needed for total elements.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Headers builds X-Total-Count and Link for the page p of a collection served at baseURL.
func Headers(total int64, p Pageable, baseURL string) http.Header {
	h := make(http.Header)
	h.Set(HeaderTotalCount, strconv.FormatInt(total, 10))

	totalPages := TotalPages(total, p.Size)
	var links []string
	if p.Page+1 < totalPages {
		links = append(links, link(baseURL, p.Page+1, p.Size, "next"))
	}
	if p.Page > 0 {
		links = append(links, link(baseURL, p.Page-1, p.Size, "prev"))
	}
	lastPage := 0
	if totalPages > 0 {
		lastPage = totalPages - 1
	}
	links = append(links,
		link(baseURL, lastPage, p.Size, "last"),
		link(baseURL, 0, p.Size, "first"),
	)
	h.Set(HeaderLink, strings.Join(links, ","))
	return h
}

// Build pairs the body of a page with its pagination headers.
func Build[T any](items []T, total int64, p Pageable, baseURL string) ([]T, http.Header) {
	if items == nil {
		items = []T{}
	}
	return items, Headers(total, p, baseURL)
}

func link(baseURL string, page, size int, rel string) string {
	return fmt.Sprintf("<%s?page=%d&size=%d>; rel=%q", baseURL, page, size, rel)
}
