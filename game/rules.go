package game

// Rules validates batches that arrive from outside the search, before they
// touch the authoritative grid.
type Rules interface {
	CheckBatch(g *Grid, faction Kind, moves []Move) error
}
