package notion

import "time"

// Filter mirrors the query endpoint's filter object. Only the shapes the
// sync jobs use are modeled: last-edited windows on a named property, and
// conjunctions of them.
type Filter struct {
	Property       string         `json:"property,omitempty"`
	LastEditedTime *DateCondition `json:"last_edited_time,omitempty"`
	And            []*Filter      `json:"and,omitempty"`
}

type DateCondition struct {
	OnOrAfter  string `json:"on_or_after,omitempty"`
	OnOrBefore string `json:"on_or_before,omitempty"`
}

func LastEditedOnOrAfter(property string, t time.Time) *Filter {
	return &Filter{
		Property:       property,
		LastEditedTime: &DateCondition{OnOrAfter: t.Format(time.RFC3339)},
	}
}

func LastEditedOnOrBefore(property string, t time.Time) *Filter {
	return &Filter{
		Property:       property,
		LastEditedTime: &DateCondition{OnOrBefore: t.Format(time.RFC3339)},
	}
}

// And combines filters, dropping nils. One filter passes through unwrapped;
// none means no filter at all.
func And(filters ...*Filter) *Filter {
	var kept []*Filter
	for _, f := range filters {
		if f != nil {
			kept = append(kept, f)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &Filter{And: kept}
}

// EntityConfig binds one workspace database to the sync engine: which
// database to query and which property carries the last-edited watermark.
// The watermark property name differs per database, so it is configuration,
// not a literal at the call site.
type EntityConfig struct {
	DatabaseID    string
	WatermarkProp string
}
