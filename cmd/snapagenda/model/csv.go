package model

// EventCSV is the row shape of the agenda export download.
type EventCSV struct {
	Title       string `csv:"title"`
	Date        string `csv:"date"`
	Time        string `csv:"time"`
	Location    string `csv:"location"`
	Description string `csv:"description"`
}

// EventsToCSV maps a collection to export rows, keeping the given order.
func EventsToCSV(events []Event) []*EventCSV {
	rows := make([]*EventCSV, 0, len(events))
	for _, e := range events {
		rows = append(rows, &EventCSV{
			Title:       e.Title,
			Date:        e.Date,
			Time:        e.Time,
			Location:    e.Location,
			Description: e.Description,
		})
	}
	return rows
}
