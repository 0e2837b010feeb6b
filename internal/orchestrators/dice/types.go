package dice

// RollInput defines the request for rolling dice
type RollInput struct {
	// Notation such as "2d6", "d20" or "3d8+2"
	Notation string
}

// RollOutput defines the response for rolling dice
type RollOutput struct {
	Roll *Roll
}

// Roll is the result of one notation roll
type Roll struct {
	RollID string
	// Notation in canonical form, e.g. "1d20" for "d20"
	Notation string
	Count    int
	Size     int
	Modifier int
	// Dice holds every die face, in roll order
	Dice []int
	// Total is the sum of the dice plus the modifier
	Total int
	// Output is the text displayed by the roll modal
	Output string
}
