package behavior

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/consent"
	"github.com/vulchevd/web.io/internal/dom"
)

const analyticsKey = "behavior.analytics"

// Analytics injects the GA4 tag once the visitor has accepted cookies.
type Analytics struct {
	MeasurementID string // e.g. G-XXXXXXXXXX
	Store         consent.Store
	Debug         bool
}

// Attach installs the tag when consent is already accepted, or when the
// accept button is clicked later.
func (a Analytics) Attach(doc *dom.Document) error {
	id := strings.TrimSpace(a.MeasurementID)
	if id == "" || !doc.Once(analyticsKey) {
		return nil
	}
	state, err := consent.Read(doc.Context(), a.Store)
	if err != nil {
		return err
	}
	if state == consent.Accepted {
		a.install(doc, id)
		return nil
	}
	// delegated, so the banner may be attached before or after this
	doc.AddEventListener(nil, "click", func(e *dom.Event) {
		if withinID(e.Target, acceptButtonID) {
			a.install(doc, id)
		}
	})
	return nil
}

const acceptButtonID = "accept-cookies"

func withinID(n *html.Node, id string) bool {
	for ; n != nil; n = n.Parent {
		if v, ok := dom.Attr(n, "id"); ok && v == id {
			return true
		}
	}
	return false
}

func (a Analytics) install(doc *dom.Document, id string) {
	head := doc.Head()
	if head == nil || doc.First("script[data-analytics]") != nil {
		return
	}
	loader := dom.Element("script", "async", "", "data-analytics", "loader",
		"src", "https://www.googletagmanager.com/gtag/js?id="+id)
	config := fmt.Sprintf("{'anonymize_ip':true,'debug_mode':%t}", a.Debug)
	inline := dom.Element("script", "data-analytics", "config")
	dom.Append(inline, dom.Text(
		"window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}" +
			"gtag('js',new Date());gtag('config','" + id + "'," + config + ");"))
	dom.Append(head, loader)
	dom.Append(head, inline)
}
