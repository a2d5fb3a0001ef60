package tetris

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Phase        string
	Score        int
	Level        int
	Lines        int
	FallInterval int
	Board        [][]Cell
	Active       PieceType // Zero after game over
	ActiveX      int
	ActiveY      int
	ActiveShape  Shape
	Next         PieceType
	Paused       bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	e := g.engine
	snap := Snapshot{
		Tick:         g.tick,
		Phase:        e.Phase().String(),
		Score:        e.Score(),
		Level:        e.Level(),
		Lines:        e.Lines(),
		FallInterval: e.FallInterval(),
		Board:        e.Board(),
		Next:         e.Next().Type,
		Paused:       g.paused,
	}
	if active, ok := e.Active(); ok {
		snap.Active = active.Type
		snap.ActiveX = active.X
		snap.ActiveY = active.Y
		snap.ActiveShape = active.Shape
	}
	return snap
}
