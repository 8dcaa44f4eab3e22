package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Construction.
	ErrUnknownEnv  = "E_UNKNOWN_ENV"
	ErrUnknownRep  = "E_UNKNOWN_REP"

	// Episode layer.
	ErrBadAction     = "E_BAD_ACTION"
	ErrResetRequired = "E_RESET_REQUIRED"
	ErrInternal      = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrUnknownEnv:      {},
	ErrUnknownRep:      {},
	ErrBadAction:       {},
	ErrResetRequired:   {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
