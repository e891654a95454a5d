// Package render turns one day of the itinerary into a content tree.
//
// Rendering is pure: the same day always yields the same tree, and nothing
// here touches the terminal, storage, or the store. The view layer walks the
// tree to draw it and to find the focusable checklist items and actions.
package render

import "viaggio/internal/model"

// Kind identifies what a node displays.
type Kind int

const (
	KindDay Kind = iota
	KindHeader
	KindSection
	KindPlaceholder
	KindCheckbox
	KindText
	KindActivity
	KindDetails
	KindDetailTag
	KindRestaurant
	KindRestaurantLine
	KindAccommodation
)

// ActionKind identifies what an action button does.
type ActionKind int

const (
	ActionShowDetails ActionKind = iota
	ActionShowOnMap
)

// Action is a typed UI trigger carrying its full payload.
type Action struct {
	Kind  ActionKind
	Label string
	Title string
	Place model.Place
}

// Msg converts the action into the message the view dispatches.
func (a Action) Msg() any {
	switch a.Kind {
	case ActionShowDetails:
		var activity model.Activity
		if a.Place.Activity != nil {
			activity = *a.Place.Activity
		}
		return model.ShowDetailsMsg{Title: a.Title, Activity: activity}
	default:
		return model.ShowOnMapMsg{Title: a.Title, Place: a.Place}
	}
}

// Node is one element of the content tree.
//
// Label and Text depend on Kind: the header carries date/route, sections
// carry their heading in Label, activities carry name/description, detail
// tags carry label/value. Index is the positional checklist index and is
// only meaningful for KindCheckbox.
type Node struct {
	Kind     Kind
	Label    string
	Text     string
	Index    int
	Actions  []Action
	Children []*Node
}

// Focusable reports whether the view should let the cursor land on the node.
func (n *Node) Focusable() bool {
	return n.Kind == KindCheckbox || len(n.Actions) > 0
}

// Action returns the node's action of the given kind.
func (n *Node) Action(kind ActionKind) (Action, bool) {
	for _, a := range n.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}

// Walk visits n and its descendants depth-first in display order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Checkboxes returns the checklist nodes in order of appearance.
func (n *Node) Checkboxes() []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.Kind == KindCheckbox {
			out = append(out, c)
		}
	})
	return out
}

// Find returns every node of the given kind in display order.
func (n *Node) Find(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.Kind == kind {
			out = append(out, c)
		}
	})
	return out
}
