package console

import "github.com/rotisserie/eris"

var (
	ErrEmptyName          = eris.New("entity name is empty")
	ErrNilSource          = eris.New("entity source is nil")
	ErrUnknownProperty    = eris.New("unknown property")
	ErrIncompatibleValue  = eris.New("value incompatible with entity kind")
	ErrInvalidRefreshRate = eris.New("refresh rate must be a positive number of frames")
	ErrKindMismatch       = eris.New("entity already registered with a different kind")
	ErrClosed             = eris.New("console is closed")
)
