package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/seu-repo/genie-bridge/internal/domain"
)

// TokenizeResult is the tokenizer service answer: the token stream plus the
// structured entities it detected, keyed by tag (NUMBER_0, TIME_0, ...).
// Entity payloads stay raw; the resolver decodes the one it expects.
type TokenizeResult struct {
	Tokens   []string                   `json:"tokens"`
	Entities map[string]json.RawMessage `json:"entities"`
}

// Tokenizer is the natural-language tokenizer collaborator.
type Tokenizer interface {
	Tokenize(ctx context.Context, language, text string) (*TokenizeResult, error)
}

// LocationCandidate is one geocoder hit. Rank grows with the size of the
// administrative area (a country ranks higher than a city).
type LocationCandidate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Display   string  `json:"display"`
	Rank      int     `json:"rank"`
}

// LocationResolver is the geocoding collaborator.
type LocationResolver interface {
	Resolve(ctx context.Context, language, text string) ([]LocationCandidate, error)
}

// ExampleRepository looks up canonical examples. Returns (nil, nil) when no
// record matches the triple.
type ExampleRepository interface {
	GetByIntentName(ctx context.Context, language, device, name string) (*domain.CanonicalExample, error)
}

// TurnSink receives the output events the engine emits while executing one
// conversation turn.
type TurnSink interface {
	AppendText(text string)
	AppendCard(card domain.RichLink)
	AppendChoice(idx int, payload, title, text string)
	AppendLink(title, url string)
	AppendResult(msg domain.ResultMessage)
	MarkAskSpecial(kind string)
}

// ConversationEngine executes one compiled command as one conversation turn,
// streaming output events into the sink until the turn completes.
type ConversationEngine interface {
	Execute(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink TurnSink) error
}

// Cache is a string key/value cache with TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// AuthService validates bearer credentials and supplies the anonymous user
// for unauthenticated turns.
type AuthService interface {
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	Anonymous() *domain.User
}
