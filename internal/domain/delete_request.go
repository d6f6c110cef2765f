package domain

import "time"

// DeleteRequestStatus enumerates the moderated-deletion state machine.
// pending is the only non-terminal state; approved and denied are final.
type DeleteRequestStatus string

const (
	DeleteRequestPending  DeleteRequestStatus = "pending"
	DeleteRequestApproved DeleteRequestStatus = "approved"
	DeleteRequestDenied   DeleteRequestStatus = "denied"
)

// DeleteRequest records a seller's request to retire a listing. At most one
// pending request may exist per service; this is enforced by a partial
// unique index in the store.
type DeleteRequest struct {
	ID           string
	ServiceID    string
	SellerID     string
	Reason       *string
	Status       DeleteRequestStatus
	AdminID      *string
	AdminComment *string
	RequestedAt  time.Time
	ProcessedAt  *time.Time
}

// Resolved reports whether the request reached a terminal state.
func (r *DeleteRequest) Resolved() bool {
	return r.Status != DeleteRequestPending
}

// DeleteRequestDetail joins a request with summaries of its service and seller.
type DeleteRequestDetail struct {
	DeleteRequest
	ServiceTitle       string
	ServiceDescription string
	SellerName         string
	SellerEmail        string
}
