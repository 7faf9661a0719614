package stripe

// --- Responses from the Stripe API ---

type productResponse struct {
	ID string `json:"id"`
}

type priceResponse struct {
	ID string `json:"id"`
}

type paymentLinkResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Webhook payload (only the fields we read) ---

type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID          string            `json:"id"`
			AmountTotal int64             `json:"amount_total"`
			Currency    string            `json:"currency"`
			Metadata    map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}
