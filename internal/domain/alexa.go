package domain

// Request types the platform sends to the skill webhook.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Intent names with fixed, non-database handling.
const (
	IntentStop       = "AMAZON.StopIntent"
	IntentRawCommand = "org.thingpedia.command"
)

// RawCommandSlot is the single slot of the raw command intent.
const RawCommandSlot = "command"

// WebhookRequest is the inbound intent envelope. Immutable per request.
type WebhookRequest struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

type Session struct {
	SessionID string       `json:"sessionId"`
	New       bool         `json:"new,omitempty"`
	User      *SessionUser `json:"user,omitempty"`
}

type SessionUser struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken,omitempty"`
}

type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot is the platform's loosely-typed slot value: a raw string plus the
// platform's own entity resolution attempt.
type Slot struct {
	Name        string       `json:"name"`
	Value       string       `json:"value"`
	Resolutions *Resolutions `json:"resolutions,omitempty"`
}

type Resolutions struct {
	PerAuthority []ResolutionAuthority `json:"resolutionsPerAuthority"`
}

type ResolutionAuthority struct {
	Authority string            `json:"authority"`
	Values    []ResolutionValue `json:"values"`
}

type ResolutionValue struct {
	Value ResolvedSlotValue `json:"value"`
}

type ResolvedSlotValue struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// WebhookResponse is the single JSON answer of one turn.
type WebhookResponse struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	Response          ResponseBody   `json:"response"`
}

type ResponseBody struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	Card             *Card        `json:"card,omitempty"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

const (
	CardTypeSimple      = "Simple"
	CardTypeLinkAccount = "LinkAccount"
)

// RichLink is the engine's rich-card descriptor (title, optional body text
// and callback URLs). Only the readable parts survive the webhook rendering.
type RichLink struct {
	DisplayTitle string `json:"displayTitle"`
	DisplayText  string `json:"displayText,omitempty"`
	Callback     string `json:"callback,omitempty"`
	WebCallback  string `json:"webCallback,omitempty"`
}
