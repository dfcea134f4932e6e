package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// attr is one element attribute. Attributes render in the order given.
type attr = templ.KeyValue[string, any]

func a(key string, value any) attr { return templ.KV(key, value) }

func attrs(list ...attr) templ.OrderedAttributes { return templ.OrderedAttributes(list) }

// urlAttr sanitizes target with templ.URL.
func urlAttr(key, target string) attr { return a(key, string(templ.URL(target))) }

func class(classes ...any) attr { return a("class", templ.Classes(classes...).String()) }

// optional yields an attribute value that is omitted when empty.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

var voidElements = map[string]bool{
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
}

// el renders an element with escaped attributes followed by its children.
// Void elements ignore children. Nil children are skipped.
func el(tag string, attributes templ.OrderedAttributes, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, attributes); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if voidElements[tag] {
			return nil
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

func text(s string) templ.Component { return templ.Raw(templ.EscapeString(s)) }

func number(n int) templ.Component { return text(strconv.Itoa(n)) }

// when renders c only if cond holds.
func when(cond bool, c templ.Component) templ.Component {
	if !cond {
		return templ.NopComponent
	}
	return c
}

// postButton is a one-button form posting to action.
func postButton(action string, button templ.OrderedAttributes, label templ.Component) templ.Component {
	return el("form", attrs(a("method", "post"), urlAttr("action", action)),
		el("button", append(button, a("type", "submit")), label),
	)
}
