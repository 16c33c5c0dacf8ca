package alerts

import "sort"

// Language tags recognised by SelectText
const (
	LangEnglish     = "en"
	LangEnglishHTML = "en-html"
)

// SelectText picks the display text of an alert, first match wins:
// header in "en", header in "en-html", description in "en", else "".
func SelectText(a *Alert) string {
	if a == nil {
		return ""
	}
	if s := firstText(a.HeaderText, LangEnglish); s != "" {
		return s
	}
	if s := firstText(a.HeaderText, LangEnglishHTML); s != "" {
		return s
	}
	return firstText(a.DescriptionText, LangEnglish)
}

func firstText(ts *TranslatedString, lang string) string {
	if ts == nil {
		return ""
	}
	for _, tr := range ts.Translation {
		if tr.Language == lang && tr.Text != "" {
			return tr.Text
		}
	}
	return ""
}

// Normalize converts every entity of feed into a ServiceAlert and sorts the
// result by start time. Alerts without a start time sort first; ties keep
// feed order.
func Normalize(feed *Feed) []ServiceAlert {
	if feed == nil {
		return []ServiceAlert{}
	}
	out := make([]ServiceAlert, 0, len(feed.Entity))
	for _, e := range feed.Entity {
		out = append(out, normalizeEntity(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return startBefore(out[i].StartTime, out[j].StartTime)
	})
	return out
}

func startBefore(a, b *int64) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

func normalizeEntity(e Entity) ServiceAlert {
	sa := ServiceAlert{Routes: []string{}, Stops: []string{}}
	if e.ID != nil {
		sa.ID = *e.ID
	}
	a := e.Alert
	if a == nil {
		return sa
	}
	sa.Text = SelectText(a)
	for _, ie := range a.InformedEntity {
		if ie.RouteID != "" {
			sa.Routes = append(sa.Routes, ie.RouteID)
		}
		if ie.StopID != "" {
			sa.Stops = append(sa.Stops, ie.StopID)
		}
	}
	if len(a.ActivePeriod) > 0 {
		sa.StartTime = a.ActivePeriod[0].Start.int64Ptr()
	}
	if m := a.Mercury; m != nil {
		if m.AlertType != nil {
			t := *m.AlertType
			sa.AlertType = &t
		}
		sa.CreatedAt = m.CreatedAt.int64Ptr()
		sa.UpdatedAt = m.UpdatedAt.int64Ptr()
	}
	return sa
}
