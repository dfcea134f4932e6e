package orchestrator

// State is a checkout step. Each step renders exactly one view into the
// modal, except Browsing which shows only the page.
type State int

const (
	StateBrowsing State = iota
	StatePreview
	StateCartReview
	StateOrderDetails
	StateContactDetails
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StatePreview:
		return "preview"
	case StateCartReview:
		return "cart_review"
	case StateOrderDetails:
		return "order_details"
	case StateContactDetails:
		return "contact_details"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}
