package appointment

import "fmt"

const visitTimeLayout = "02/01/2006 at 15:04"

func visitLabel(a *Appointment) string {
	if a.IsGeneral() {
		return "consultation at the agency"
	}
	if a.PropertyRef != "" {
		return fmt.Sprintf("visit of listing %s", a.PropertyRef)
	}
	return "property visit"
}

func requestReceivedBody(a *Appointment) string {
	return fmt.Sprintf(
		"Hello %s,\n\nWe received your request for a %s on %s.\nAn agent will confirm it shortly.\n\nOuest Immo",
		a.VisitorName, visitLabel(a), a.ScheduledAt.Format(visitTimeLayout),
	)
}

func confirmedBody(a *Appointment) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour %s on %s is confirmed.\n\nSee you soon,\nOuest Immo",
		a.VisitorName, visitLabel(a), a.ScheduledAt.Format(visitTimeLayout),
	)
}

func cancelledBody(a *Appointment) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour %s on %s has been cancelled.\nFeel free to book another slot.\n\nOuest Immo",
		a.VisitorName, visitLabel(a), a.ScheduledAt.Format(visitTimeLayout),
	)
}
