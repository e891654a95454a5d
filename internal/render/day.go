package render

import "viaggio/internal/model"

// Display strings.
const (
	TextDayNotFound   = "Journée non trouvée"
	TextLoadFailed    = "Erreur de chargement des données"
	TextNoMorning     = "Aucune activité prévue le matin"
	TextNoAfternoon   = "Aucune activité prévue l'après-midi"
	HeadingMorning    = "Matin"
	HeadingAfternoon  = "Après-midi / Soir"
	HeadingDinner     = "Dîner"
	HeadingLodging    = "Hébergement"
	LabelShowDetails  = "📋 Détails"
	LabelShowOnMap    = "🗺️ Carte"
	PrefixLocation    = "📍"
	PrefixSpecialty   = "🍽️"
	PrefixNote        = "💡"
	PrefixAccommodate = "🏨"
)

// EntryPolicy decides how bare string entries of an activity list are shown.
type EntryPolicy int

const (
	// ChecklistEntries renders bare strings as toggleable checkboxes (morning).
	ChecklistEntries EntryPolicy = iota
	// StaticEntries renders bare strings as plain text (afternoon/evening).
	StaticEntries
)

// NotFound returns the placeholder shown when a day cannot be displayed.
func NotFound() *Node {
	return &Node{Kind: KindPlaceholder, Text: TextDayNotFound}
}

// LoadFailed returns the placeholder shown when the document failed to load.
func LoadFailed() *Node {
	return &Node{Kind: KindPlaceholder, Text: TextLoadFailed}
}

// Render builds the content tree for day. A nil day (index out of range or
// document not loaded yet) yields the "day not found" placeholder.
func Render(day *model.DayPlan) *Node {
	if day == nil {
		return NotFound()
	}

	r := &renderer{}
	return &Node{
		Kind: KindDay,
		Children: []*Node{
			{Kind: KindHeader, Label: day.Date, Text: day.Route},
			{Kind: KindSection, Label: HeadingMorning, Children: r.morning(day.Morning)},
			{Kind: KindSection, Label: HeadingAfternoon, Children: r.afternoon(day.AfternoonEvening)},
		},
	}
}

// renderer numbers checkboxes in order of appearance within one day.
type renderer struct {
	next int
}

func (r *renderer) morning(entries []model.ActivityEntry) []*Node {
	if len(entries) == 0 {
		return []*Node{{Kind: KindPlaceholder, Text: TextNoMorning}}
	}
	return r.entries(entries, ChecklistEntries)
}

func (r *renderer) afternoon(section *model.AfternoonSection) []*Node {
	if section == nil {
		return []*Node{{Kind: KindPlaceholder, Text: TextNoAfternoon}}
	}

	nodes := r.entries(section.Activities, StaticEntries)

	if len(section.DinnerRecommendations) > 0 {
		dinner := &Node{Kind: KindSection, Label: HeadingDinner}
		for i := range section.DinnerRecommendations {
			dinner.Children = append(dinner.Children, restaurant(section.DinnerRecommendations[i]))
		}
		nodes = append(nodes, dinner)
	}

	if section.Accommodation != "" {
		nodes = append(nodes, &Node{
			Kind:     KindSection,
			Label:    HeadingLodging,
			Children: []*Node{accommodation(section.Accommodation)},
		})
	}

	return nodes
}

func (r *renderer) entries(entries []model.ActivityEntry, policy EntryPolicy) []*Node {
	var nodes []*Node
	for _, e := range entries {
		switch {
		case e.Activity != nil:
			if e.Activity.Name == "" {
				continue
			}
			nodes = append(nodes, activity(*e.Activity))
		case e.IsLabel():
			if policy == ChecklistEntries {
				nodes = append(nodes, &Node{Kind: KindCheckbox, Text: e.Label, Index: r.next})
				r.next++
			} else {
				nodes = append(nodes, &Node{Kind: KindText, Text: e.Label})
			}
		}
	}
	return nodes
}

func activity(a model.Activity) *Node {
	payload := a
	n := &Node{
		Kind:  KindActivity,
		Label: a.Name,
		Text:  a.Description,
		Actions: []Action{
			{Kind: ActionShowDetails, Label: LabelShowDetails, Title: a.Name, Place: model.Place{Activity: &payload}},
			{Kind: ActionShowOnMap, Label: LabelShowOnMap, Title: a.Name, Place: model.Place{Activity: &payload}},
		},
	}
	if d := RenderActivityDetails(a.Details); d != nil {
		n.Children = append(n.Children, d)
	}
	return n
}

func restaurant(rest model.Restaurant) *Node {
	payload := rest
	n := &Node{
		Kind:  KindRestaurant,
		Label: rest.Name,
		Actions: []Action{
			{Kind: ActionShowOnMap, Label: LabelShowOnMap, Title: rest.Name, Place: model.Place{Restaurant: &payload}},
		},
	}
	for _, line := range []struct{ prefix, text string }{
		{PrefixLocation, rest.Location},
		{PrefixSpecialty, rest.Specialty},
		{PrefixNote, rest.Note},
	} {
		if line.text != "" {
			n.Children = append(n.Children, &Node{Kind: KindRestaurantLine, Label: line.prefix, Text: line.text})
		}
	}
	return n
}

func accommodation(name string) *Node {
	return &Node{
		Kind:  KindAccommodation,
		Label: PrefixAccommodate,
		Text:  name,
		Actions: []Action{
			{Kind: ActionShowOnMap, Label: LabelShowOnMap, Title: HeadingLodging, Place: model.Place{Restaurant: &model.Restaurant{Name: name}}},
		},
	}
}
