package constants

import "time"

// Canonical weekday names. Days-off and preferred days are stored with these.
const (
	Lundi    = "lundi"
	Mardi    = "mardi"
	Mercredi = "mercredi"
	Jeudi    = "jeudi"
	Vendredi = "vendredi"
	Samedi   = "samedi"
	Dimanche = "dimanche"
)

// WeekdayNames maps time.Weekday to its canonical name.
var WeekdayNames = map[time.Weekday]string{
	time.Monday:    Lundi,
	time.Tuesday:   Mardi,
	time.Wednesday: Mercredi,
	time.Thursday:  Jeudi,
	time.Friday:    Vendredi,
	time.Saturday:  Samedi,
	time.Sunday:    Dimanche,
}

// WeekdayOrder lists canonical names Monday first.
var WeekdayOrder = []string{Lundi, Mardi, Mercredi, Jeudi, Vendredi, Samedi, Dimanche}

// WeekdayAliases maps accepted spellings to canonical names.
var WeekdayAliases = map[string]string{
	"lun":       Lundi,
	"mar":       Mardi,
	"mer":       Mercredi,
	"jeu":       Jeudi,
	"ven":       Vendredi,
	"sam":       Samedi,
	"dim":       Dimanche,
	"mon":       Lundi,
	"monday":    Lundi,
	"tue":       Mardi,
	"tuesday":   Mardi,
	"wed":       Mercredi,
	"wednesday": Mercredi,
	"thu":       Jeudi,
	"thursday":  Jeudi,
	"fri":       Vendredi,
	"friday":    Vendredi,
	"sat":       Samedi,
	"saturday":  Samedi,
	"sun":       Dimanche,
	"sunday":    Dimanche,
}
