package behavior

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/consent"
	"github.com/vulchevd/web.io/internal/dom"
	"github.com/vulchevd/web.io/internal/i18n"
	"github.com/vulchevd/web.io/internal/nav"
)

// DefaultConsentAction is where the banner form posts when scripts are off.
const DefaultConsentAction = "/consent"

const cookieBannerKey = "behavior.cookie-banner"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type bannerData struct {
	Labels     i18n.CookieLabels
	PolicyHref string
	Action     string
	CSRFField  string
	CSRFToken  string
}

// CookieBanner asks for cookie consent until a decision is stored.
type CookieBanner struct {
	Bundle   *i18n.Bundle
	Resolver *nav.Resolver
	Store    consent.Store
	// Action is the banner form target. Empty means DefaultConsentAction.
	Action string
	// CSRFField and CSRFToken, when set, add a hidden token input to the form.
	CSRFField string
	CSRFToken string
	// OnError receives storage failures raised by button clicks.
	OnError func(error)
}

// Attach renders the banner when no decision exists. A failing read still
// shows the banner and is returned.
func (b CookieBanner) Attach(doc *dom.Document) error {
	if b.Bundle == nil || b.Resolver == nil {
		return errors.New("behavior: cookie banner needs a bundle and a resolver")
	}
	if !doc.Once(cookieBannerKey) {
		return nil
	}
	state, readErr := consent.Read(doc.Context(), b.Store)
	if state != consent.Unset {
		return nil
	}
	body := doc.Body()
	if body == nil {
		return readErr
	}

	banner, err := b.render(doc.Location())
	if err != nil {
		return errors.Join(readErr, err)
	}
	dom.Append(body, banner)

	decide := func(st consent.State) dom.Handler {
		return func(e *dom.Event) {
			e.PreventDefault()
			if err := consent.Write(doc.Context(), b.Store, st); err != nil && b.OnError != nil {
				b.OnError(err)
			}
			dom.Remove(banner)
		}
	}
	if btn := doc.First(".cookie-banner #accept-cookies"); btn != nil {
		doc.AddEventListener(btn, "click", decide(consent.Accepted))
	}
	if btn := doc.First(".cookie-banner #decline-cookies"); btn != nil {
		doc.AddEventListener(btn, "click", decide(consent.Declined))
	}
	return readErr
}

func (b CookieBanner) render(loc nav.Location) (*html.Node, error) {
	action := b.Action
	if action == "" {
		action = DefaultConsentAction
	}
	current := loc.Lang()
	data := bannerData{
		Labels:     b.Bundle.Labels(current).Cookies,
		PolicyHref: b.Resolver.PageURL(current, string(nav.CookiePolicy), loc),
		Action:     action,
		CSRFField:  b.CSRFField,
		CSRFToken:  b.CSRFToken,
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "cookie_banner", data); err != nil {
		return nil, fmt.Errorf("behavior: render cookie banner: %w", err)
	}
	nodes, err := dom.ParseFragment(buf.String())
	if err != nil {
		return nil, err
	}
	banner := dom.FirstElement(nodes)
	if banner == nil {
		return nil, errors.New("behavior: empty cookie banner")
	}
	return banner, nil
}
