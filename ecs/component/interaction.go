package component

// Interaction is the state an interactive object shares with sibling
// visuals: whether the user is currently rotating it and the stage it was
// last classified into.
type Interaction struct {
	Rotating bool
	Stage    int
}

var InteractionComponent = NewComponent[Interaction]()
