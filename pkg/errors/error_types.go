package errors

// ScriptError indica um script de replay malformado ou inválido
const ScriptError ErrorType = "script_error"

// ReplayError indica um evento que não pode ser aplicado durante o replay
const ReplayError ErrorType = "replay_error"
