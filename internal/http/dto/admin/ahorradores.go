package admin

import "time"

// AhorradorResponse representa un ahorrador en las respuestas del API.
type AhorradorResponse struct {
	ID           string         `json:"id"`
	Nombre       string         `json:"nombre"`
	Cedula       string         `json:"cedula"`
	Telefono     string         `json:"telefono"`
	Direccion    string         `json:"direccion"`
	Email        string         `json:"email"`
	FechaIngreso string         `json:"fechaIngreso"`
	Extra        map[string]any `json:"extra,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateAhorradorRequest representa el payload para crear un ahorrador.
// FechaIngreso viaja como string YYYY-MM-DD; el service la parsea.
type CreateAhorradorRequest struct {
	Nombre       string         `json:"nombre"`
	Cedula       string         `json:"cedula"`
	Telefono     string         `json:"telefono"`
	Direccion    string         `json:"direccion"`
	Email        string         `json:"email"`
	FechaIngreso string         `json:"fechaIngreso"`
	Extra        map[string]any `json:"extra"`
}

// UpdateAhorradorRequest representa el payload para actualizar un ahorrador.
// Los campos en nil no se tocan (merge parcial).
type UpdateAhorradorRequest struct {
	Nombre       *string        `json:"nombre"`
	Cedula       *string        `json:"cedula"`
	Telefono     *string        `json:"telefono"`
	Direccion    *string        `json:"direccion"`
	Email        *string        `json:"email"`
	FechaIngreso *string        `json:"fechaIngreso"`
	Extra        map[string]any `json:"extra"`
}

// MensajeResponse es la respuesta de operaciones que solo confirman.
type MensajeResponse struct {
	Message string `json:"message"`
}
