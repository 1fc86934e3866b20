package plan

import (
	"fmt"
	"strings"
)

// dag is a directed acyclic graph of descriptors for dependency ordering.
type dag struct {
	nodes    map[string]*dagNode
	order    []string // topological order (creation order)
	revOrder []string // reverse topological order (destruction order)
}

type dagNode struct {
	name     string
	edges    []string // descriptors this node depends on
	revEdges []string // descriptors that depend on this node
}

// buildDAG constructs a dependency graph from descriptors. It resolves both
// explicit DependsOn entries and implicit ref:// references embedded in
// properties. A dependency naming a descriptor absent from the list is an
// InvalidConfigurationError; a cycle is a plain error.
func buildDAG(descriptors []*Descriptor) (*dag, error) {
	d := &dag{
		nodes: make(map[string]*dagNode),
	}

	for _, desc := range descriptors {
		d.nodes[desc.Name] = &dagNode{name: desc.Name}
	}

	for _, desc := range descriptors {
		node := d.nodes[desc.Name]

		for _, dep := range desc.DependsOn {
			if _, ok := d.nodes[dep]; !ok {
				return nil, &InvalidConfigurationError{Name: desc.Name, Missing: dep}
			}
			node.edges = append(node.edges, dep)
		}

		for _, ref := range extractRefs(desc.Properties) {
			dep := refTarget(ref)
			if dep == "" {
				continue
			}
			if _, ok := d.nodes[dep]; !ok {
				return nil, &InvalidConfigurationError{Name: desc.Name, Missing: dep}
			}
			node.edges = append(node.edges, dep)
		}
	}

	for _, desc := range descriptors {
		node := d.nodes[desc.Name]
		for _, dep := range node.edges {
			d.nodes[dep].revEdges = append(d.nodes[dep].revEdges, desc.Name)
		}
	}

	order, err := d.topoSort(descriptors)
	if err != nil {
		return nil, err
	}
	d.order = order

	d.revOrder = make([]string, len(order))
	for i, name := range order {
		d.revOrder[len(order)-1-i] = name
	}

	return d, nil
}

// topoSort performs Kahn's algorithm. Ties are broken by declaration order
// so plans are stable across runs.
func (d *dag) topoSort(descriptors []*Descriptor) ([]string, error) {
	inDegree := make(map[string]int)
	for name, node := range d.nodes {
		inDegree[name] = len(node.edges)
	}

	var queue []string
	for _, desc := range descriptors {
		if inDegree[desc.Name] == 0 {
			queue = append(queue, desc.Name)
		}
	}

	var sorted []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		sorted = append(sorted, name)

		for _, dependent := range d.nodes[name].revEdges {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) != len(d.nodes) {
		return nil, fmt.Errorf("dependency cycle detected in resource graph")
	}

	return sorted, nil
}

// dependencies returns the direct dependencies of a descriptor.
func (d *dag) dependencies(name string) []string {
	if node, ok := d.nodes[name]; ok {
		return node.edges
	}
	return nil
}

// extractRefs collects all ref:// references from a property value.
func extractRefs(v any) []string {
	var refs []string
	switch val := v.(type) {
	case string:
		if strings.HasPrefix(val, "ref://") {
			refs = append(refs, val)
		}
	case map[string]any:
		for _, v := range val {
			refs = append(refs, extractRefs(v)...)
		}
	case []any:
		for _, v := range val {
			refs = append(refs, extractRefs(v)...)
		}
	}
	return refs
}

// refTarget extracts the descriptor name from a ref:// reference.
// ref://cosmos/id -> cosmos
func refTarget(ref string) string {
	if !strings.HasPrefix(ref, "ref://") {
		return ""
	}
	path := ref[len("ref://"):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0]
}

// refAttribute extracts the attribute name from a ref:// reference.
// ref://cosmos/id -> id
func refAttribute(ref string) string {
	if !strings.HasPrefix(ref, "ref://") {
		return ""
	}
	path := ref[len("ref://"):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
