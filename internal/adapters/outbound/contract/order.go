package contract

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const maxRefDepth = 16

var operationKeys = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// documentOrder answers declaration-order questions from the raw document
// tree, which kin-openapi does not keep.
type documentOrder struct {
	root *yaml.Node
}

func newDocumentOrder(doc *yaml.Node) *documentOrder {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	return &documentOrder{root: root}
}

func (o *documentOrder) swaggerVersion() string {
	if v := child(o.root, "swagger"); v != nil && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}

func (o *documentOrder) paths() []string {
	return mappingKeys(child(o.root, "paths"))
}

// methods returns the upper-cased operation keys of a path in document order.
func (o *documentOrder) methods(template string) []string {
	var out []string
	for _, k := range mappingKeys(o.resolve(child(child(o.root, "paths"), template))) {
		if operationKeys[strings.ToLower(k)] {
			out = append(out, strings.ToUpper(k))
		}
	}
	return out
}

// propertyOrder returns the property names of a schema in document order.
// ref is the schema's $ref when kin-openapi reported one; otherwise the
// schema is found by walking at from the document root.
func (o *documentOrder) propertyOrder(ref string, at []string) []string {
	var node *yaml.Node
	if ref != "" {
		node = o.pointer(ref)
	} else {
		node = o.walk(at)
	}
	return mappingKeys(child(o.resolve(node), "properties"))
}

func (o *documentOrder) walk(segments []string) *yaml.Node {
	node := o.root
	for _, seg := range segments {
		node = child(o.resolve(node), seg)
		if node == nil {
			return nil
		}
	}
	return node
}

// pointer resolves a local JSON reference such as #/components/schemas/Pet.
func (o *documentOrder) pointer(ref string) *yaml.Node {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return o.walk(parts)
}

// resolve follows local $ref chains.
func (o *documentOrder) resolve(node *yaml.Node) *yaml.Node {
	for i := 0; node != nil && i < maxRefDepth; i++ {
		ref := child(node, "$ref")
		if ref == nil || ref.Kind != yaml.ScalarNode {
			return node
		}
		node = o.pointer(ref.Value)
	}
	return node
}

func child(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func mappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, node.Content[i].Value)
	}
	return out
}
