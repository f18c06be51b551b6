package domain

// Pairing is an ephemeral pre-write object produced by the pairing
// engine (C1). Black is nil for a bye board.
type Pairing struct {
	White PlayerID
	Black *PlayerID
	Board int
}

// IsBye reports whether this pairing has no Black-side opponent.
func (p Pairing) IsBye() bool { return p.Black == nil }
