package render

import "viaggio/internal/model"

var detailLabels = map[string]string{
	"entry_fee":                "💰 Tarif",
	"hours":                    "🕐 Horaires",
	"tour_duration":            "⏱️ Durée",
	"ferry_company":            "🚢 Compagnie",
	"ferry_schedule":           "📅 Horaires ferry",
	"ticket_price":             "🎫 Prix",
	"audio_guide":              "🎧 Audio-guide",
	"price_round_trip":         "🎫 Aller-retour",
	"palazzo_ducale_entry_fee": "💰 Palais Ducal",
	"palazzo_ducale_hours":     "🕐 Palais Ducal",
	"musee_entry_fee":          "💰 Musée",
	"combined_ticket":          "🎫 Pass combiné",
	"duration":                 "⏱️ Durée",
	"price":                    "💰 Prix",
	"location":                 "📍 Lieu",
}

// DetailLabel returns the display label for a details key. Unknown keys are
// returned unchanged.
func DetailLabel(key string) string {
	if label, ok := detailLabels[key]; ok {
		return label
	}
	return key
}

// RenderActivityDetails produces one tag per detail in document order, or nil
// when there are no details.
func RenderActivityDetails(details model.Details) *Node {
	if len(details) == 0 {
		return nil
	}
	n := &Node{Kind: KindDetails}
	for _, f := range details {
		n.Children = append(n.Children, &Node{Kind: KindDetailTag, Label: DetailLabel(f.Key), Text: f.Value})
	}
	return n
}
