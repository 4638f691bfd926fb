// Package behavior holds the interactive page features. Each one attaches to
// a mounted dom.Document and is independent of the others.
package behavior

import (
	"errors"

	"github.com/vulchevd/web.io/internal/dom"
)

// Behavior attaches event handlers to a document.
type Behavior interface {
	Attach(doc *dom.Document) error
}

// AttachAll attaches every behavior, continuing past failures.
func AttachAll(doc *dom.Document, behaviors ...Behavior) error {
	var errs []error
	for _, b := range behaviors {
		if b == nil {
			continue
		}
		if err := b.Attach(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
