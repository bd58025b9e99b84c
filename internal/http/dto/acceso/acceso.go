package acceso

// VerificarPinRequest representa el payload para verificar el PIN de acceso.
type VerificarPinRequest struct {
	Pin string `json:"pin"`
}

// SesionResponse se retorna al verificar el PIN con éxito.
type SesionResponse struct {
	Verificado bool   `json:"verificado"`
	Token      string `json:"token,omitempty"`
	ExpiraEn   int64  `json:"expira_en,omitempty"` // segundos restantes
}

// EstadoSesionResponse se retorna al consultar la sesión vigente.
type EstadoSesionResponse struct {
	Verificado bool `json:"verificado"`
}

// MensajeResponse es la respuesta de operaciones que solo confirman.
type MensajeResponse struct {
	Message string `json:"message"`
}
