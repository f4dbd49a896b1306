package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvvishnuu/portfolio/internal/contact"
	"github.com/cvvishnuu/portfolio/internal/portfolio"
	"github.com/cvvishnuu/portfolio/internal/store"
)

// contactView is the data of the contact-form template.
type contactView struct {
	Form    contact.Form
	Status  string
	Message string
}

func (s *Server) handleHome(c *gin.Context) {
	p := s.Portfolio
	c.HTML(http.StatusOK, "index.html", gin.H{
		"P":           p,
		"Nav":         portfolio.BuildNav(portfolio.Nav[0].ID),
		"Social":      p.SocialLinks(),
		"ContactInfo": p.ContactInfo(),
		"Contact":     contactView{},
		"Year":        time.Now().Year(),
	})
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", contactView{})
}

// handleContact runs one submission for the posted draft and answers with
// the re-rendered form: emptied on success, unchanged on error.
func (s *Server) handleContact(c *gin.Context) {
	var draft contact.Form
	for _, field := range contact.Fields {
		draft = draft.With(field, c.PostForm(string(field)))
	}

	if err := draft.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact.html", contactView{
			Form:    draft,
			Status:  contact.StatusError.String(),
			Message: "Please fill in your name, email and message.",
		})
		return
	}

	opts := append([]contact.Option{
		contact.WithForm(draft),
		contact.WithLogger(s.Logger.With("component", "contact")),
	}, s.ContactOptions...)
	controller := contact.NewController(s.Relay, s.Settings, opts...)

	err := controller.Submit(c.Request.Context())
	snap := controller.Snapshot()
	s.recordSubmission(c.Request.Context(), draft, err)

	c.HTML(http.StatusOK, "contact.html", contactView{
		Form:    snap.Form,
		Status:  snap.Status.String(),
		Message: snap.Status.Message(),
	})
}

func (s *Server) recordSubmission(ctx context.Context, draft contact.Form, err error) {
	if s.Store == nil {
		return
	}
	sub := store.Submission{
		Email:     draft.Email,
		Status:    contact.StatusSuccess.String(),
		Simulated: !s.Settings.Enabled,
	}
	var failure *contact.Failure
	if errors.As(err, &failure) {
		sub.Status = contact.StatusError.String()
		sub.FailedStep = string(failure.Step)
	} else if err != nil {
		sub.Status = contact.StatusError.String()
	}
	// The request may already be gone; the outcome is still worth keeping.
	if _, recErr := s.Store.RecordSubmission(context.WithoutCancel(ctx), sub); recErr != nil {
		s.Logger.Warn("error recording submission", "error", recErr)
	}
}
