package notification

import "fmt"

// Type is one badge category the admin can mark as seen.
type Type string

const (
	TypeReviews       Type = "reviews"
	TypeEnquiries     Type = "enquiries"
	TypeSupport       Type = "support"
	errInvalidTypeFmt      = "invalid notification type: %s"
)

func (t Type) Validate() error {
	switch t {
	case TypeReviews, TypeEnquiries, TypeSupport:
		return nil
	default:
		return fmt.Errorf(errInvalidTypeFmt, t)
	}
}

// Counts are unseen items per type. The backend also sends a total; it is
// not stored, Total is always derived.
type Counts struct {
	Reviews   int `json:"reviews"`
	Enquiries int `json:"enquiries"`
	Support   int `json:"support"`
}

func (c Counts) Total() int {
	return c.Reviews + c.Enquiries + c.Support
}

// Seen returns c with the count for t cleared.
func (c Counts) Seen(t Type) Counts {
	switch t {
	case TypeReviews:
		c.Reviews = 0
	case TypeEnquiries:
		c.Enquiries = 0
	case TypeSupport:
		c.Support = 0
	}
	return c
}

// View is the wire form sent to the rendering layer.
type View struct {
	Reviews   int `json:"reviews"`
	Enquiries int `json:"enquiries"`
	Support   int `json:"support"`
	Total     int `json:"total"`
}

func (c Counts) View() View {
	return View{
		Reviews:   c.Reviews,
		Enquiries: c.Enquiries,
		Support:   c.Support,
		Total:     c.Total(),
	}
}
