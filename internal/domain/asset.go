package domain

import "fmt"

// Presentation is one slide deck embedded in a session, discovered from the
// presentation text document. Only the entry count is needed downstream: it
// bounds the slide and thumbnail indices.
type Presentation struct {
	ID         string
	SlideCount int
}

// SlidePath returns the session-relative path of slide i (1-based) of a
// presentation element.
func SlidePath(elementID string, i int) string {
	return fmt.Sprintf("presentation/%s/slide-%d.png", elementID, i)
}

// ThumbnailPath returns the session-relative path of thumbnail i (1-based)
// of a presentation element.
func ThumbnailPath(elementID string, i int) string {
	return fmt.Sprintf("presentation/%s/thumbnails/thumb-%d.png", elementID, i)
}
