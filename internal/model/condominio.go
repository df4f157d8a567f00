package model

import "time"

// Condominio is a guarded residential complex.
type Condominio struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Endereco  string    `json:"endereco,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
