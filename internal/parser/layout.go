package parser

// Absent marks a field whose column does not exist in a layout
const Absent = -1

// NoticeColumns is the width of the standard auction-notice table
const NoticeColumns = 14

// Layout maps record fields to table column indices
type Layout struct {
	// MinColumns is the narrowest row that can still hold a record
	MinColumns int

	Sequence         int
	DateTime         int
	Place            int
	Location         int
	Form             int
	SaleForm         int
	PropertyType     int
	Attributes       int
	Area             int
	AgriculturalArea int
	StartingPrice    int
	EstimatedValue   int
	Deposit          int
	Increment        int
	NextAuction      int
	Remarks          int
}

// DefaultLayout returns the 14-column notice table:
//
//	Lp. | - | data i godzina | miejsce | położenie | forma | rodzaj przetargu |
//	typ/charakter | atrybuty | pow. ogólna | pow. UR | cena wywoławcza |
//	kolejny przetarg | uwagi
//
// Estimated value, deposit and increment have no column and are looked up
// in the remarks and attributes text.
func DefaultLayout() Layout {
	return Layout{
		MinColumns:       12,
		Sequence:         0,
		DateTime:         2,
		Place:            3,
		Location:         4,
		Form:             5,
		SaleForm:         6,
		PropertyType:     7,
		Attributes:       8,
		Area:             9,
		AgriculturalArea: 10,
		StartingPrice:    11,
		EstimatedValue:   Absent,
		Deposit:          Absent,
		Increment:        Absent,
		NextAuction:      12,
		Remarks:          13,
	}
}

// Width returns the number of columns the layout spans
func (l Layout) Width() int {
	width := 0
	for _, idx := range []int{
		l.Sequence, l.DateTime, l.Place, l.Location, l.Form, l.SaleForm,
		l.PropertyType, l.Attributes, l.Area, l.AgriculturalArea,
		l.StartingPrice, l.EstimatedValue, l.Deposit, l.Increment,
		l.NextAuction, l.Remarks,
	} {
		if idx+1 > width {
			width = idx + 1
		}
	}
	return width
}
