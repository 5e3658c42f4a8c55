package ioc

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/junioryono/ioc/internal/graph"
)

// EntryInfo is a snapshot of one registry entry.
type EntryInfo struct {
	Type           string   `yaml:"type" json:"type"`
	Parent         string   `yaml:"parent,omitempty" json:"parent,omitempty"`
	Dependencies   []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Inherited      bool     `yaml:"inherited,omitempty" json:"inherited,omitempty"`
	Constructor    string   `yaml:"constructor,omitempty" json:"constructor,omitempty"`
	Interceptors   int      `yaml:"interceptors,omitempty" json:"interceptors,omitempty"`
	HasProvider    bool     `yaml:"has_provider" json:"has_provider"`
	Singleton      bool     `yaml:"singleton" json:"singleton"`
	Constructed    bool     `yaml:"constructed" json:"constructed"`
	HasProxy       bool     `yaml:"has_proxy" json:"has_proxy"`
	ProxiedMethods []string `yaml:"proxied_methods,omitempty" json:"proxied_methods,omitempty"`
}

// Describe returns a snapshot of every entry, sorted by type name. It does
// not create entries or providers.
func (r *Registry) Describe() []EntryInfo {
	types := r.Types()

	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]EntryInfo, 0, len(types))
	for _, t := range types {
		e := r.entries[t]

		info := EntryInfo{
			Type:         t.String(),
			Interceptors: len(e.interceptors),
			HasProvider:  e.provider != nil,
			Singleton:    e.singleton,
			Constructed:  e.constructed,
			HasProxy:     e.proxy != nil,
			Inherited:    !e.declared && e.parent != nil,
		}
		if e.parent != nil {
			info.Parent = e.parent.String()
		}
		if e.constructor != nil {
			info.Constructor = e.constructor.Type.String()
		}
		for _, dep := range r.visibleDependenciesLocked(t) {
			info.Dependencies = append(info.Dependencies, dep.String())
		}
		if e.proxy != nil {
			info.ProxiedMethods = e.proxy.Methods()
		}

		infos = append(infos, info)
	}

	return infos
}

// WriteYAML writes Describe as a YAML document.
func (r *Registry) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	doc := struct {
		Registry string      `yaml:"registry"`
		Entries  []EntryInfo `yaml:"entries"`
	}{
		Registry: r.id,
		Entries:  r.Describe(),
	}

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// WriteDOT writes the dependency and parent links as a Graphviz digraph.
func (r *Registry) WriteDOT(w io.Writer) error {
	return graph.NewVisualizer(r.graph()).WriteDOT(w)
}

// WriteText writes the dependency and parent links as an adjacency list.
func (r *Registry) WriteText(w io.Writer) error {
	return graph.NewVisualizer(r.graph()).WriteText(w)
}

func (r *Registry) graph() *graph.Graph {
	g := graph.New()
	for _, info := range r.Describe() {
		g.AddNode(graph.Node{
			Name:         info.Type,
			Singleton:    info.Singleton,
			Constructed:  info.Constructed,
			Interceptors: info.Interceptors,
		})
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for t, e := range r.entries {
		if e.parent != nil {
			g.AddEdge(t.String(), e.parent.String(), graph.Parent, 0)
		}
		if !e.declared {
			continue
		}
		for i, dep := range e.dependencies {
			g.AddEdge(t.String(), dep.String(), graph.Dependency, i)
		}
	}

	return g
}

