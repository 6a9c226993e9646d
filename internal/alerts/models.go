package alerts

// DispatchRequest triggers an emergency alert to the user's contacts.
// Coordinates are optional; without them the message says the location is
// unavailable rather than failing the alert.
type DispatchRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Note      string   `json:"note"`
}

// ChannelResult is the outcome of one delivery attempt
type ChannelResult struct {
	Contact   string `json:"contact"`
	Channel   string `json:"channel"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DispatchResult aggregates per-contact outcomes of one alert
type DispatchResult struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	SMSResults []ChannelResult `json:"sms_results"`
	CallResult *ChannelResult  `json:"call_result,omitempty"`
	Emails     []ChannelResult `json:"email_results,omitempty"`
}
