package entity

const DefaultPageSize = 10

// Page selects a 1-based page of a listing.
type Page struct {
	Number int
	Size   int
}

func NewPage(number int) Page {
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Size: DefaultPageSize}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns how many pages are needed to list total rows.
func (p Page) TotalPages(total int64) int64 {
	if p.Size <= 0 {
		return 0
	}
	size := int64(p.Size)
	return (total + size - 1) / size
}

// MeetupFilter restricts a meetup listing.
// Zero values mean "no restriction".
type MeetupFilter struct {
	ExcludeUserID int
	From          int64 // inclusive, epoch millis
	To            int64 // exclusive, epoch millis
}
