package invoice

import "fmt"

// Status is the lifecycle state of an invoice. The set is closed; the zero value is invalid.
type Status int

const (
	StatusDraft        Status = iota + 1 // initial state, lines may be incomplete
	StatusSending                        // validated and handed to the notification channel
	StatusSentToClient                   // delivery confirmed, terminal
)

const (
	statusDraftValue        = "draft"
	statusSendingValue      = "sending"
	statusSentToClientValue = "sent-to-client"
)

// String returns the wire and storage representation.
func (s Status) String() string {
	switch s {
	case StatusDraft:
		return statusDraftValue
	case StatusSending:
		return statusSendingValue
	case StatusSentToClient:
		return statusSentToClientValue
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// IsValid reports whether s is one of the declared states.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSending, StatusSentToClient:
		return true
	default:
		return false
	}
}

// ParseStatus converts the stored representation back to a Status.
func ParseStatus(value string) (Status, error) {
	switch value {
	case statusDraftValue:
		return StatusDraft, nil
	case statusSendingValue:
		return StatusSending, nil
	case statusSentToClientValue:
		return StatusSentToClient, nil
	default:
		return 0, fmt.Errorf("unknown invoice status %q", value)
	}
}
