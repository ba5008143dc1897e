package errors

// Códigos de erro para diferentes componentes
const (
	// Códigos de erro para ScriptError (1000-1099)
	ErrScriptMalformed     = 1000
	ErrScriptUnknownOp     = 1001
	ErrScriptMissingRef    = 1002
	ErrScriptUnknownFormat = 1003

	// Códigos de erro para ReplayError (1100-1199)
	ErrReplayDuplicateRef = 1100
	ErrReplayUnknownRef   = 1101
	ErrReplayCancelled    = 1102

	// Códigos de erro para SystemError (1200-1299)
	ErrFileNotFound      = 1200
	ErrFileNotAccessible = 1201
)
