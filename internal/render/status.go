package render

import "github.com/jorge-barreto/incidentdesk/internal/fixtures"

type ServiceView struct {
	Name    string `json:"name"`
	Dot     string `json:"dot"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
	Impact  string `json:"impact"`
	Owner   string `json:"owner"`
	Link    string `json:"link,omitempty"`
}

type UpdateView struct {
	Time  string `json:"time"`
	Pill  string `json:"pill"`
	Level string `json:"level"`
	Text  string `json:"text"`
}

// StatusView is the public status page.
type StatusView struct {
	BannerTitle     string        `json:"banner_title"`
	BannerDot       string        `json:"banner_dot"`
	BannerPill      string        `json:"banner_pill"`
	BannerBody      string        `json:"banner_body"`
	Meta            string        `json:"meta"`
	CustomerMessage string        `json:"customer_message"`
	Services        []ServiceView `json:"services"`
	Updates         []UpdateView  `json:"updates"`
}

func StatusPage(st fixtures.Status) StatusView {
	var banner fixtures.Banner
	if st.Banner != nil {
		banner = *st.Banner
	}
	v := StatusView{
		BannerTitle:     or(banner.Title, "Status update"),
		BannerDot:       DotClass(banner.State),
		BannerPill:      PillText(banner.State),
		BannerBody:      banner.Body,
		Meta:            "Last updated: " + or(st.LastUpdated, Placeholder) + " • Next update: " + or(st.NextUpdate, Placeholder),
		CustomerMessage: or(st.CustomerMessage, Placeholder),
	}
	for _, s := range st.Services {
		v.Services = append(v.Services, ServiceView{
			Name:    s.Name,
			Dot:     DotClass(s.Status),
			Status:  upperCase(s.Status),
			Summary: s.Summary,
			Impact:  or(s.Impact, "None"),
			Owner:   or(s.Owner, "Ops"),
			Link:    s.Link,
		})
	}
	for _, u := range st.Updates {
		v.Updates = append(v.Updates, UpdateView{
			Time:  u.Time,
			Pill:  LevelPill(u.Level),
			Level: LevelLabel(u.Level),
			Text:  u.Text,
		})
	}
	return v
}

// CustomerUpdate is the copyable customer-facing update.
func CustomerUpdate(st fixtures.Status) string {
	return "Customer Update (" + st.LastUpdated + "):\n\n" + st.CustomerMessage
}
