// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Config, the ordered collection of instances produced by
// parsing one root document.
package model

// Config holds instances in first-seen order with lookup by name. It is
// filled by a single parse and treated as read-only afterwards.
type Config struct {
	// RootPath is the path of the document the parse started from.
	RootPath  string
	Instances []*Instance
	byName    map[string]*Instance
}

// NewConfig returns an empty Config for the given root document.
func NewConfig(rootPath string) *Config {
	return &Config{
		RootPath: rootPath,
		byName:   make(map[string]*Instance),
	}
}

// Instance looks up an instance by name.
func (c *Config) Instance(name string) (*Instance, bool) {
	inst, ok := c.byName[name]
	return inst, ok
}

// Open records a section header. The first header for a name creates the
// instance and fixes its type; later headers are appended to it.
func (c *Config) Open(h *SectionHeader) *Instance {
	inst, ok := c.byName[h.InstanceName]
	if !ok {
		inst = &Instance{Name: h.InstanceName, TypeName: h.TypeName}
		c.byName[inst.Name] = inst
		c.Instances = append(c.Instances, inst)
	}
	inst.Headers = append(inst.Headers, h)
	return inst
}

// Names returns instance names in first-seen order.
func (c *Config) Names() []string {
	out := make([]string, len(c.Instances))
	for i, inst := range c.Instances {
		out[i] = inst.Name
	}
	return out
}
