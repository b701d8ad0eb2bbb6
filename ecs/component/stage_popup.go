package component

// StageCard is the content shown for one stage.
type StageCard struct {
	Title string
	Body  string
	Link  string
}

// StagePopup holds the card currently on screen. Visible is false while no
// stage is active.
type StagePopup struct {
	Stage   int
	Card    StageCard
	Visible bool
	// Cards maps stage number to its base content from the prefab.
	Cards map[int]StageCard
}

var StagePopupComponent = NewComponent[StagePopup]()
