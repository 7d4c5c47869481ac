package output

import "github.com/teranos/weft/event"

// TextSerializer produces plain text: only TEXT event content is
// emitted, unescaped. Text that carries literal markup is reduced to its
// displayable content first (tags stripped, entities decoded).
type TextSerializer struct{}

// NewText creates a plain-text serializer.
func NewText() *TextSerializer { return &TextSerializer{} }

// Serialize implements Serializer.
func (s *TextSerializer) Serialize(in event.Stream) *Fragments {
	return &Fragments{
		next: func() (string, bool) {
			for {
				ev, ok := in.Next()
				if !ok {
					return "", false
				}
				if ev.Kind != event.Text {
					continue
				}
				if ev.Literal {
					return event.Plaintext(ev.Text), true
				}
				return ev.Text, true
			}
		},
		err: in.Err,
	}
}
