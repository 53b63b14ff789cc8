package db

// KNNQuery is the input for approximate nearest-neighbour search.
type KNNQuery struct {
	Collection string
	IndexName  string
	Path       string // document field holding the stored vectors
	Vector     []float32
	K          int
	ScoreField string // output field for the search score, empty to omit
}
