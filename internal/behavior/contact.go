package behavior

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/dom"
	"github.com/vulchevd/web.io/internal/i18n"
)

// DefaultConfirmationTimeout is how long the thank-you message stays up.
const DefaultConfirmationTimeout = 5 * time.Second

const contactFormKey = "behavior.contact-form"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// contactFields lists the form inputs by id, in the order errors are shown.
var contactFields = []string{"name", "email", "message"}

// Submission is the content of the contact form.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks every field and reports all failures at once as
// validation.Errors keyed by input id. Messages come from msgs.
func (s Submission) Validate(msgs i18n.FormLabels) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.By(notBlank("form.name_required", msgs.NameRequired))),
		validation.Field(&s.Email,
			validation.By(notBlank("form.email_required", msgs.EmailRequired)),
			validation.Match(emailPattern).ErrorObject(validation.NewError("form.email_required", msgs.EmailRequired)),
		),
		validation.Field(&s.Message, validation.By(notBlank("form.message_required", msgs.MessageRequired))),
	)
}

func notBlank(code, msg string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, msg)
		}
		return nil
	}
}

// ContactForm validates #contact-form on submit. Nothing is sent anywhere:
// a valid form is cleared and a confirmation is shown for
// ConfirmationTimeout (DefaultConfirmationTimeout when zero).
type ContactForm struct {
	Bundle              *i18n.Bundle
	ConfirmationTimeout time.Duration
}

func (c ContactForm) Attach(doc *dom.Document) error {
	form := doc.ByID("contact-form")
	if form == nil || c.Bundle == nil {
		return nil
	}
	if !doc.Once(contactFormKey) {
		return nil
	}
	timeout := c.ConfirmationTimeout
	if timeout <= 0 {
		timeout = DefaultConfirmationTimeout
	}
	msgs := c.Bundle.Labels(doc.Location().Lang()).Form

	doc.AddEventListener(form, "submit", func(e *dom.Event) {
		e.PreventDefault()
		clearErrors(doc, form)

		inputs := make(map[string]*html.Node, len(contactFields))
		for _, id := range contactFields {
			inputs[id] = doc.ByID(id)
		}
		sub := Submission{
			Name:    dom.Value(inputs["name"]),
			Email:   dom.Value(inputs["email"]),
			Message: dom.Value(inputs["message"]),
		}

		var errs validation.Errors
		if err := sub.Validate(msgs); errors.As(err, &errs) {
			for _, id := range contactFields {
				if fieldErr, ok := errs[id]; ok {
					showError(inputs[id], fieldErr.Error())
				}
			}
			return
		}

		dom.ResetForm(form)
		success := dom.Element("div", "class", "success-message")
		dom.SetText(success, msgs.ThankYou)
		dom.InsertAfter(form, success)
		doc.SetTimeout(timeout, func() { dom.Remove(success) })
	})
	return nil
}

// clearErrors drops the messages and field markers left in form by the
// previous submit.
func clearErrors(doc *dom.Document, form *html.Node) {
	for _, n := range doc.Find(".error-message").Nodes {
		if dom.Contains(form, n) {
			dom.Remove(n)
		}
	}
	for _, n := range doc.Find(".form-group .error").Nodes {
		if dom.Contains(form, n) {
			dom.RemoveClass(n, "error")
		}
	}
}

func showError(input *html.Node, msg string) {
	if input == nil {
		return
	}
	note := dom.Element("div", "class", "error-message")
	dom.SetText(note, msg)
	dom.InsertAfter(input, note)
	dom.AddClass(input, "error")
}
