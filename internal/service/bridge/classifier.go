package bridge

import (
	"fmt"
	"strings"

	"github.com/seu-repo/genie-bridge/internal/domain"
)

// Builtin programs for session control requests.
const (
	ProgramNevermind = "bookkeeping(special(nevermind))"
	ProgramWakeup    = "bookkeeping(special(wakeup))"
)

// PathKind selects one of the handling paths for an inbound envelope.
type PathKind int

const (
	// PathBuiltin runs a fixed builtin program.
	PathBuiltin PathKind = iota
	// PathRawText passes free text straight to the engine.
	PathRawText
	// PathDBIntent compiles a database-backed intent.
	PathDBIntent
)

// Classification is the result of dispatching one envelope. Program is set
// for PathBuiltin, Text for PathRawText, Device+Intent for PathDBIntent.
type Classification struct {
	Kind    PathKind
	Program string
	Text    string
	Device  string
	Intent  string
}

// Classify decides how an envelope is handled. Pure dispatch, no side
// effects. Unsupported request types are integration errors and propagate.
func Classify(req *domain.WebhookRequest) (*Classification, error) {
	switch req.Request.Type {
	case domain.RequestTypeSessionEnded:
		return &Classification{Kind: PathBuiltin, Program: ProgramNevermind}, nil
	case domain.RequestTypeLaunch:
		return &Classification{Kind: PathBuiltin, Program: ProgramWakeup}, nil
	case domain.RequestTypeIntent:
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRequestKind, req.Request.Type)
	}

	intent := req.Request.Intent
	if intent == nil {
		return nil, fmt.Errorf("%w: intent request without intent", domain.ErrInvalidRequestKind)
	}

	switch intent.Name {
	case domain.IntentStop:
		return &Classification{Kind: PathBuiltin, Program: ProgramNevermind}, nil
	case domain.IntentRawCommand:
		return &Classification{Kind: PathRawText, Text: intent.Slots[domain.RawCommandSlot].Value}, nil
	default:
		device, name := splitIntentName(intent.Name)
		return &Classification{Kind: PathDBIntent, Device: device, Intent: name}, nil
	}
}

// splitIntentName splits "com.example.device.action" on the last dot into
// (device, action).
func splitIntentName(name string) (string, string) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return "", name
	}
	return name[:dot], name[dot+1:]
}
