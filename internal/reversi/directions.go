package reversi

// Direction is a unit step along a row, column or diagonal.
type Direction struct {
	DRow int
	DCol int
}

// Directions lists the eight neighbours of a cell, top-left first.
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
