package razorpay

// --- Request payloads sent to Razorpay ---

type createLinkRequest struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	AcceptPartial bool              `json:"accept_partial"`
	Description   string            `json:"description"`
	Customer      linkCustomer      `json:"customer"`
	Notify        linkNotify        `json:"notify"`
	Notes         map[string]string `json:"notes"`
	CallbackURL   string            `json:"callback_url,omitempty"`
}

type linkCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact,omitempty"`
}

type linkNotify struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// --- Responses ---

type createLinkResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// --- Webhook payload (only the fields we read) ---

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		PaymentLink struct {
			Entity struct {
				ID         string            `json:"id"`
				AmountPaid int64             `json:"amount_paid"`
				Currency   string            `json:"currency"`
				Notes      map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"payment_link"`
		Payment struct {
			Entity struct {
				ID       string            `json:"id"`
				Amount   int64             `json:"amount"`
				Currency string            `json:"currency"`
				Notes    map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}
