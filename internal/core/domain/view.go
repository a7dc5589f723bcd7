package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// View models handed to the presenter. Each one is a full snapshot of
// its region, so presenting the same model twice is a no-op visually.
type (
	NavbarView struct {
		LoggedIn  bool
		FirstName string
		CartCount int
	}

	FeaturedView struct {
		Product Product
	}

	CategoryCard struct {
		Category string
		Title    string
		Sample   Product
	}

	GridView struct {
		Products []Product
	}

	SlideView struct {
		Product Product
		Index   int
		Total   int
	}

	DetailView struct {
		Product Product
	}

	CartLine struct {
		Product   Product
		Quantity  int
		LineTotal float64
	}

	CartView struct {
		Lines []CartLine
		Total float64
	}

	OrderView struct {
		OrderID string
	}
)
