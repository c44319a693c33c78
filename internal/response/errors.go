package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrOAuthFailed        ErrCode = "OAUTH_FAILED"
	ErrLoginRequired      ErrCode = "LOGIN_REQUIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAccessDenied    ErrCode = "ACCESS_DENIED"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrInvalidID       ErrCode = "INVALID_ID"
	ErrDuplicateOption ErrCode = "DUPLICATE_OPTION_VALUE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Quiz session ──────────────────────────────────────────────────
	ErrSessionNotFound  ErrCode = "SESSION_NOT_FOUND"
	ErrSessionCompleted ErrCode = "SESSION_COMPLETED"
	ErrNoSelection      ErrCode = "NO_SELECTION"
	ErrUnknownOption    ErrCode = "UNKNOWN_OPTION"
	ErrNotVerified      ErrCode = "NOT_VERIFIED"
	ErrNotCompleted     ErrCode = "SESSION_NOT_COMPLETED"
	ErrNoQuestions      ErrCode = "NO_QUESTIONS"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Correo o contraseña incorrectos."
	case ErrTokenRequired:
		return "Se requiere un token de autenticación."
	case ErrTokenInvalid:
		return "El token de autenticación no es válido."
	case ErrOAuthFailed:
		return "No se pudo completar el inicio de sesión con Google."
	case ErrLoginRequired:
		return "Este es un simulador privado. Inicia sesión para comprobar si tienes acceso."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrAccessDenied:
		return "No tienes permiso para acceder a este simulador privado."
	case ErrAdminAccessOnly:
		return "Este recurso está restringido a administradores."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "La validación falló. Revisa los datos ingresados."
	case ErrInvalidID:
		return "El formato del identificador no es válido."
	case ErrDuplicateOption:
		return "Dos opciones no pueden tener el mismo valor."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "No se encontró el recurso solicitado."
	case ErrConflict:
		return "El recurso ya existe."

	// ─── Quiz session ──────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "La sesión del simulador no existe o expiró."
	case ErrSessionCompleted:
		return "La sesión del simulador ya terminó."
	case ErrNoSelection:
		return "Selecciona una opción antes de verificar."
	case ErrUnknownOption:
		return "La opción seleccionada no pertenece a la pregunta."
	case ErrNotVerified:
		return "Verifica tu respuesta antes de continuar."
	case ErrNotCompleted:
		return "La sesión del simulador todavía está en curso."
	case ErrNoQuestions:
		return "Este simulador aún no tiene preguntas."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Se requiere un archivo."
	case ErrUnsupportedFile:
		return "El tipo de archivo no es compatible."
	case ErrFileTooLarge:
		return "El archivo supera el tamaño máximo."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Demasiadas solicitudes. Inténtalo de nuevo más tarde."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Ocurrió un error interno del servidor."
	default:
		return "Ocurrió un error inesperado."
	}
}
