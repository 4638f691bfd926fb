package behavior

import (
	"github.com/vulchevd/web.io/internal/dom"
)

const (
	navToggleKey = "behavior.nav-toggle"
	activeClass  = "active"
)

// NavToggle opens and closes the mobile menu. A click anywhere outside the
// menu and its toggle closes it again.
type NavToggle struct{}

func (NavToggle) Attach(doc *dom.Document) error {
	toggle := doc.First(".menu-toggle")
	menu := doc.First(".main-nav")
	if toggle == nil || menu == nil {
		return nil
	}
	if !doc.Once(navToggleKey) {
		return nil
	}
	doc.AddEventListener(toggle, "click", func(*dom.Event) {
		dom.ToggleClass(toggle, activeClass)
		dom.ToggleClass(menu, activeClass)
	})
	doc.AddEventListener(nil, "click", func(e *dom.Event) {
		if !dom.HasClass(menu, activeClass) {
			return
		}
		if dom.Contains(menu, e.Target) || dom.Contains(toggle, e.Target) {
			return
		}
		dom.RemoveClass(menu, activeClass)
		dom.RemoveClass(toggle, activeClass)
	})
	return nil
}
