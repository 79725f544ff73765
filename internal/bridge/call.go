package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Method names of the call set, as sent over a method channel.
const (
	MethodInitialize         = "initialize"
	MethodProcessText        = "processText"
	MethodLoadDictionary     = "loadDictionary"
	MethodReadString         = "readString"
	MethodFreeString         = "freeString"
	MethodShutdown           = "shutdown"
	MethodGetPlatformVersion = "getPlatformVersion"
)

// Call is one operation of the closed call set. Only the types in this file
// implement it.
type Call interface {
	Method() string
	call()
}

type (
	Initialize struct{}

	ProcessText struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}

	LoadDictionary struct {
		Language string `json:"language"`
		Source   string `json:"source"`
		Format   string `json:"format,omitempty"`
	}

	ReadString struct {
		Handle Handle `json:"handle"`
	}

	FreeString struct {
		Handle Handle `json:"handle"`
	}

	Shutdown struct{}

	GetPlatformVersion struct{}
)

func (Initialize) Method() string         { return MethodInitialize }
func (ProcessText) Method() string        { return MethodProcessText }
func (LoadDictionary) Method() string     { return MethodLoadDictionary }
func (ReadString) Method() string         { return MethodReadString }
func (FreeString) Method() string         { return MethodFreeString }
func (Shutdown) Method() string           { return MethodShutdown }
func (GetPlatformVersion) Method() string { return MethodGetPlatformVersion }

func (Initialize) call()         {}
func (ProcessText) call()        {}
func (LoadDictionary) call()     {}
func (ReadString) call()         {}
func (FreeString) call()         {}
func (Shutdown) call()           {}
func (GetPlatformVersion) call() {}

// DecodeCall maps a method name and its JSON arguments to a Call.
// Unknown methods fail with domain.ErrUnknownMethod, bad arguments with
// domain.ErrValidation.
func DecodeCall(method string, args json.RawMessage) (Call, error) {
	switch method {
	case MethodInitialize:
		return Initialize{}, nil
	case MethodShutdown:
		return Shutdown{}, nil
	case MethodGetPlatformVersion:
		return GetPlatformVersion{}, nil
	case MethodProcessText:
		return decodeInto[ProcessText](method, args)
	case MethodLoadDictionary:
		return decodeInto[LoadDictionary](method, args)
	case MethodReadString:
		return decodeInto[ReadString](method, args)
	case MethodFreeString:
		return decodeInto[FreeString](method, args)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMethod, method)
}

func decodeInto[C Call](method string, args json.RawMessage) (Call, error) {
	var c C
	if len(bytes.TrimSpace(args)) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(args, &c); err != nil {
		return nil, domain.NewValidationError("args", method+": "+err.Error())
	}
	return c, nil
}

// Reply is the result of a dispatched call.
type Reply struct {
	Method string `json:"method"`
	OK     bool   `json:"ok"`
	Handle Handle `json:"handle,omitempty"`
	Text   string `json:"text,omitempty"`
	Code   int    `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}
