package propfind

import (
	"errors"
	"strings"

	"github.com/beevik/etree"
	"github.com/nimbuscal/caldav/internal/xml/props"
	"github.com/samber/mo"
)

// PropertyEncoder is the value type carried by a ResponseMap entry.
type PropertyEncoder = props.Property

var namespaceMap = props.NamespaceMap

var propNameToStruct = props.PropNameToStruct

func ParseRequest(xmlStr string) map[string]mo.Option[any] {
	props := make(map[string]mo.Option[any])

	// Parse XML using etree
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return props
	}

	// Find all property elements under propfind/prop
	propfindElem := doc.FindElement("//propfind")
	if propfindElem == nil {
		return props
	}

	propElem := propfindElem.FindElement("prop")
	if propElem == nil {
		return props
	}

	// Iterate through all child elements of prop
	for _, elem := range propElem.ChildElements() {
		// Get local name of the property (without namespace)
		localName := elem.Tag

		// If there's a namespace prefix, remove it
		if strings.Contains(localName, ":") {
			localName = strings.Split(localName, ":")[1]
		}

		// Convert to lowercase for case-insensitive matching
		localName = strings.ToLower(localName)

		// Check if we have a struct for this property
		if structPtr, exists := propNameToStruct[localName]; exists {
			// Add the property to the response map
			props[localName] = mo.Some(structPtr)
		}
	}

	return props
}

// ParsePropfindRequest parses a PROPFIND request body into a ResponseMap of
// requested property names (unresolved, each mapped to mo.Ok(nil) as a
// placeholder) along with the kind of request it was. For RequestTypeAllProp
// and RequestTypePropName, every known property is requested since the body
// carries no explicit prop list.
func ParsePropfindRequest(xmlStr string) (ResponseMap, RequestType) {
	result := make(ResponseMap)

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return result, RequestTypeAllProp
	}

	root := doc.FindElement("//propfind")
	if root == nil {
		return result, RequestTypeAllProp
	}

	if root.FindElement("allprop") != nil {
		for name, proto := range propNameToStruct {
			result[name] = mo.Ok[PropertyEncoder](proto)
		}
		return result, RequestTypeAllProp
	}

	if root.FindElement("propname") != nil {
		for name, proto := range propNameToStruct {
			result[name] = mo.Ok[PropertyEncoder](proto)
		}
		return result, RequestTypePropName
	}

	propElem := root.FindElement("prop")
	if propElem == nil {
		return result, RequestTypeProp
	}

	for _, elem := range propElem.ChildElements() {
		localName := elem.Tag
		if strings.Contains(localName, ":") {
			localName = strings.Split(localName, ":")[1]
		}
		localName = strings.ToLower(localName)
		result[localName] = mo.Ok[PropertyEncoder](nil)
	}

	return result, RequestTypeProp
}

// statusLine maps a property resolution error to its WebDAV propstat status line.
func statusLine(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "HTTP/1.1 404 Not Found"
	case errors.Is(err, ErrForbidden):
		return "HTTP/1.1 403 Forbidden"
	case errors.Is(err, ErrBadRequest):
		return "HTTP/1.1 400 Bad Request"
	default:
		return "HTTP/1.1 500 Internal Server Error"
	}
}

// propElementPrefix returns the namespace prefix a not-found property's bare
// element should carry, falling back to the DAV namespace.
func propElementPrefix(name string) string {
	if prefix, ok := props.PropPrefixMap[name]; ok {
		return prefix
	}
	return "d"
}

// EncodeResponse builds a single <d:response> multistatus document for href,
// grouping properties into one <d:propstat> per distinct outcome (200 OK, or
// the WebDAV status line their resolution error maps to).
func EncodeResponse(propsMap map[string]mo.Result[PropertyEncoder], href string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	multistatus := doc.CreateElement("d:multistatus")
	multistatus.Space = "d"
	for prefix, uri := range namespaceMap {
		multistatus.CreateAttr("xmlns:"+prefix, uri)
	}

	response := multistatus.CreateElement("d:response")
	response.Space = "d"
	hrefElem := response.CreateElement("d:href")
	hrefElem.Space = "d"
	hrefElem.SetText(href)

	type statusGroup struct {
		names  []string
		values map[string]PropertyEncoder
	}
	groups := make(map[string]*statusGroup)
	var order []string

	for name, res := range propsMap {
		val, err := res.Get()
		status := "HTTP/1.1 200 OK"
		if err != nil {
			status = statusLine(err)
		}
		g, ok := groups[status]
		if !ok {
			g = &statusGroup{values: make(map[string]PropertyEncoder)}
			groups[status] = g
			order = append(order, status)
		}
		g.names = append(g.names, name)
		if err == nil {
			g.values[name] = val
		}
	}

	for _, status := range order {
		g := groups[status]
		propstat := response.CreateElement("d:propstat")
		propstat.Space = "d"
		prop := propstat.CreateElement("d:prop")
		prop.Space = "d"
		for _, name := range g.names {
			if val, ok := g.values[name]; ok {
				prop.AddChild(val.Encode())
				continue
			}
			if proto, ok := propNameToStruct[name]; ok {
				prop.AddChild(proto.Encode())
				continue
			}
			elem := etree.NewElement(name)
			elem.Space = propElementPrefix(name)
			prop.AddChild(elem)
		}
		statusElem := propstat.CreateElement("d:status")
		statusElem.Space = "d"
		statusElem.SetText(status)
	}

	return doc
}

// MergeResponses combines the <d:response> elements of several single-resource
// documents (as produced by EncodeResponse) into one multistatus document, for
// REPORT handlers that answer with more than one resource.
func MergeResponses(docs []*etree.Document) (*etree.Document, error) {
	merged := etree.NewDocument()
	merged.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	multistatus := merged.CreateElement("d:multistatus")
	multistatus.Space = "d"
	for prefix, uri := range namespaceMap {
		multistatus.CreateAttr("xmlns:"+prefix, uri)
	}

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		root := doc.Root()
		if root == nil {
			continue
		}
		for _, resp := range root.FindElements("./d:response") {
			multistatus.AddChild(resp.Copy())
		}
	}

	return merged, nil
}
