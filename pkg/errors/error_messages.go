package errors

// Mensagens de erro padronizadas para cada código
var ErrorMessages = map[int]string{
	// ScriptError
	ErrScriptMalformed:     "Script de replay malformado. Verifique a sintaxe do arquivo.",
	ErrScriptUnknownOp:     "Operação desconhecida. Use create, update ou name.",
	ErrScriptMissingRef:    "Evento sem referência. Todo evento precisa de um campo ref.",
	ErrScriptUnknownFormat: "Formato de script não suportado. Use jsonl ou yaml.",

	// ReplayError
	ErrReplayDuplicateRef: "Referência já criada. Cada ref pode ser criada apenas uma vez.",
	ErrReplayUnknownRef:   "Referência desconhecida. Crie o valor antes de atualizá-lo ou nomeá-lo.",
	ErrReplayCancelled:    "Replay interrompido antes do fim do script.",

	// SystemError
	ErrFileNotFound:      "Arquivo não encontrado. Verifique o caminho e se o arquivo está acessível.",
	ErrFileNotAccessible: "Arquivo inacessível. Verifique as permissões e se o arquivo existe.",
}

// GetErrorMessage retorna a mensagem de erro padronizada para um código de erro
func GetErrorMessage(code int) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return "Erro desconhecido."
}
