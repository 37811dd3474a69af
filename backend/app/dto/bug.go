package dto

import (
	"net/http"

	"bugtracker/backend/app/services"
)

type BugRequest struct {
	Title       string
	Description string
	Severity    string
	Status      string
}

func BugRequestFromForm(r *http.Request) BugRequest {
	return BugRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Severity:    r.PostFormValue("severity"),
		Status:      r.PostFormValue("status"),
	}
}

func (req BugRequest) Input() services.BugInput {
	return services.BugInput{Title: req.Title, Description: req.Description, Severity: req.Severity, Status: req.Status}
}
