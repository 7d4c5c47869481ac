package output

import (
	"strconv"

	"github.com/teranos/weft/event"
)

// NamespaceFlattener rewrites namespace-URI-qualified names into prefixed
// or unprefixed textual names, synthesizing xmlns declaration attributes
// for URIs that have no binding in scope. Per namespace URI it keeps a
// stack of bound prefixes and per prefix a stack of URIs, so bindings can
// shadow at nested scopes. A URI already bound identically in an ancestor
// scope is never redeclared.
//
// Bindings synthesized at a START are popped at the matching END;
// explicit START_NS/END_NS events push and pop symmetrically, preferring
// a caller-supplied URI→prefix configuration when one names the URI.
func NamespaceFlattener(prefixes map[string]string) Filter {
	return func(in event.Stream) event.Stream {
		xmlURI := string(event.XMLNamespace)
		prefixesByURI := map[string][]string{xmlURI: {"xml"}}
		urisByPrefix := map[string][]string{"xml": {xmlURI}}
		preferred := make(map[string]string, len(prefixes))
		for uri, prefix := range prefixes {
			preferred[uri] = prefix
			urisByPrefix[prefix] = []string{uri}
		}

		push := func(prefix, uri string) {
			prefixesByURI[uri] = append(prefixesByURI[uri], prefix)
			urisByPrefix[prefix] = append(urisByPrefix[prefix], uri)
		}
		pop := func(prefix string) {
			uris := urisByPrefix[prefix]
			if len(uris) == 0 {
				return
			}
			uri := uris[len(uris)-1]
			uris = uris[:len(uris)-1]
			if len(uris) == 0 {
				delete(urisByPrefix, prefix)
			} else {
				urisByPrefix[prefix] = uris
			}
			// Keep the URI's prefix binding when the same prefix still
			// binds the same URI beneath the popped scope.
			if len(uris) == 0 || uris[len(uris)-1] != uri {
				ps := prefixesByURI[uri]
				if len(ps) > 0 {
					ps = ps[:len(ps)-1]
				}
				if len(ps) == 0 {
					delete(prefixesByURI, uri)
				} else {
					prefixesByURI[uri] = ps
				}
			}
		}

		current := func(uri string) (string, bool) {
			stack := prefixesByURI[uri]
			if len(stack) == 0 {
				return "", false
			}
			return stack[len(stack)-1], true
		}
		rendered := func(local, prefix string) string {
			if prefix == "" {
				return local
			}
			return prefix + ":" + local
		}

		nsCounter := 0
		genPrefix := func() string {
			nsCounter++
			return "ns" + strconv.Itoa(nsCounter)
		}

		var nsAttrs event.Attrs // pending xmlns declarations
		var scopes [][]string   // prefixes synthesized per open element

		return event.StreamFunc(
			func() (event.Event, bool) {
				for {
					ev, ok := in.Next()
					if !ok {
						return event.Event{}, false
					}

					switch ev.Kind {
					case event.Start, event.Empty:
						var pushed []string

						tagname := ev.Tag.Local
						if uri := ev.Tag.Namespace; uri != "" {
							if prefix, ok := current(uri); ok {
								tagname = rendered(tagname, prefix)
							} else {
								nsAttrs = append(nsAttrs, event.Attr{Name: event.Name("xmlns"), Value: uri})
								push("", uri)
								pushed = append(pushed, "")
							}
						}

						attrs := make(event.Attrs, 0, len(nsAttrs)+len(ev.Attrs))
						attrs = append(attrs, nsAttrs...)
						nsAttrs = nil
						for _, attr := range ev.Attrs {
							name := attr.Name.Local
							if uri := attr.Name.Namespace; uri != "" {
								prefix, ok := current(uri)
								if !ok {
									prefix = genPrefix()
									push(prefix, uri)
									pushed = append(pushed, prefix)
									attrs = append(attrs, event.Attr{Name: event.Name("xmlns:" + prefix), Value: uri})
								}
								name = rendered(name, prefix)
							}
							attrs = append(attrs, event.Attr{Name: event.Name(name), Value: attr.Value})
						}

						out := ev
						out.Tag = event.Name(tagname)
						out.Attrs = attrs
						if ev.Kind == event.Start {
							scopes = append(scopes, pushed)
						} else {
							// An EMPTY element's scope covers only itself.
							for i := len(pushed) - 1; i >= 0; i-- {
								pop(pushed[i])
							}
						}
						return out, true

					case event.End:
						tagname := ev.Tag.Local
						if uri := ev.Tag.Namespace; uri != "" {
							if prefix, ok := current(uri); ok {
								tagname = rendered(tagname, prefix)
							}
						}
						if n := len(scopes); n > 0 {
							for i := len(scopes[n-1]) - 1; i >= 0; i-- {
								pop(scopes[n-1][i])
							}
							scopes = scopes[:n-1]
						}
						out := ev
						out.Tag = event.Name(tagname)
						return out, true

					case event.StartNS:
						prefix, uri := ev.Prefix, ev.URI
						if _, bound := current(uri); !bound {
							if p, ok := preferred[uri]; ok {
								prefix = p
							}
							if prefix == "" {
								nsAttrs = append(nsAttrs, event.Attr{Name: event.Name("xmlns"), Value: uri})
							} else {
								nsAttrs = append(nsAttrs, event.Attr{Name: event.Name("xmlns:" + prefix), Value: uri})
							}
						}
						push(prefix, uri)

					case event.EndNS:
						pop(ev.Prefix)

					default:
						return ev, true
					}
				}
			},
			in.Err,
		)
	}
}

// NamespaceStripper removes namespace information from a stream, keeping
// only elements and attributes that are in the kept namespace (or carry
// no namespace when keep is empty).
//
// Documented quirk, preserved from the original design: only the
// START/END wrapper events of a non-kept element are omitted — its child
// events still pass through unmodified.
func NamespaceStripper(keep event.Namespace) Filter {
	kept := func(q event.QName) bool {
		if q.Namespace == "" {
			return true
		}
		return keep != "" && keep.Contains(q)
	}
	return func(in event.Stream) event.Stream {
		return event.StreamFunc(
			func() (event.Event, bool) {
				for {
					ev, ok := in.Next()
					if !ok {
						return event.Event{}, false
					}
					switch ev.Kind {
					case event.Start, event.Empty:
						if !kept(ev.Tag) {
							continue
						}
						attrs := make(event.Attrs, 0, len(ev.Attrs))
						for _, attr := range ev.Attrs {
							if kept(attr.Name) {
								attrs = append(attrs, event.Attr{Name: event.Name(attr.Name.Local), Value: attr.Value})
							}
						}
						ev.Tag = event.Name(ev.Tag.Local)
						ev.Attrs = attrs
						return ev, true
					case event.End:
						if !kept(ev.Tag) {
							continue
						}
						ev.Tag = event.Name(ev.Tag.Local)
						return ev, true
					case event.StartNS, event.EndNS:
						continue
					default:
						return ev, true
					}
				}
			},
			in.Err,
		)
	}
}
