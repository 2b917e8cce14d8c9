// Package auth puerta de acceso del tablero.
//
// El par fijo de credenciales es un marcador provisional, no una frontera de seguridad:
// el orquestador solo depende de Authenticator y una implementación real puede sustituirlo.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials datos del formulario de acceso.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Authenticator capacidad authenticate(credentials) -> ok|fail.
type Authenticator interface {
	Authenticate(ctx context.Context, c Credentials) bool
}

// StaticAuthenticator compara contra un único par configurado.
// Solo conserva el hash bcrypt de la contraseña.
type StaticAuthenticator struct {
	username string
	hash     []byte
}

// NewStaticAuthenticator construye el autenticador provisional.
func NewStaticAuthenticator(username, password string) (*StaticAuthenticator, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("auth: credenciales vacías")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash: %w", err)
	}
	return &StaticAuthenticator{username: username, hash: hash}, nil
}

// Authenticate exige coincidencia exacta de usuario y contraseña.
func (a *StaticAuthenticator) Authenticate(_ context.Context, c Credentials) bool {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(a.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(c.Password)) == nil
	return userOK && passOK
}
