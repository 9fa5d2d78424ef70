package payment

type CreateIntentRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

type IntentResponse struct {
	ClientSecret  string `json:"clientSecret"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}

// IntentParams describe a charge in minor currency units.
type IntentParams struct {
	BookingID string
	Amount    int64
	Currency  string
}

type Intent struct {
	ID           string
	ClientSecret string
}

const EventIntentSucceeded = "payment_intent.succeeded"

// Event is the part of a provider webhook the service acts on.
type Event struct {
	ID       string
	Type     string
	IntentID string
}
