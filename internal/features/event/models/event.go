package models

// Event is the descriptive document shown on the landing page. It is a
// single admin-edited value, so last write wins.
type Event struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	MapLink   string `json:"mapLink"`
	DressCode string `json:"dressCode"`
	Theme     string `json:"theme"`
}

// Default returns the event details served before the admin saves any.
func Default() *Event {
	return &Event{
		Date:      "Sábado 26 de Octubre, 2025",
		Time:      "17:00 hrs",
		Location:  "Casa de los Abuelos",
		MapLink:   "https://maps.google.com/?q=-33.4489,-70.6693",
		DressCode: "Casual y cómodo",
		Theme:     "Tonos pastel 💙",
	}
}
