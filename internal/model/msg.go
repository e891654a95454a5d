package model

// Bubble Tea message types

// DocumentLoadedMsg is sent when the itinerary document has been fetched and parsed.
type DocumentLoadedMsg struct {
	Document *Document
}

// DocumentFailedMsg is sent when fetching or parsing the itinerary fails.
type DocumentFailedMsg struct {
	Err error
}

// ShowDetailsMsg asks the view to open the activity detail dialog.
type ShowDetailsMsg struct {
	Title    string
	Activity Activity
}

// ShowOnMapMsg asks the view to open the map dialog for a place.
type ShowOnMapMsg struct {
	Title string
	Place Place
}

// Place is the payload of a "show on map" action: either an activity or a restaurant.
type Place struct {
	Activity   *Activity
	Restaurant *Restaurant
}

// Name returns the display name of the place.
func (p Place) Name() string {
	switch {
	case p.Activity != nil:
		return p.Activity.Name
	case p.Restaurant != nil:
		return p.Restaurant.Name
	default:
		return ""
	}
}

// ProgressTickMsg fires on every autosave interval.
type ProgressTickMsg struct{}

// ProgressFlushedMsg is sent after completion state has been written.
type ProgressFlushedMsg struct {
	Err error
}

// Modal identifies one of the two dialogs.
type Modal int

const (
	ModalNone Modal = iota
	ModalDetails
	ModalMap
)
