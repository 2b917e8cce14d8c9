package repository

import "context"

// LoginFlagStore persiste el único indicador de sesión del tablero.
type LoginFlagStore interface {
	Load(ctx context.Context) (bool, error)
	// Save(true) marca la sesión; Save(false) la borra.
	Save(ctx context.Context, loggedIn bool) error
}
