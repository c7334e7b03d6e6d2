package graph

import (
	"context"
	"log/slog"
	"slices"

	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/model"
	"github.com/vk/pipeconf/internal/value"
)

// relation is one read or write of a level by an instance.
type relation struct {
	kind     EdgeKind
	level    string
	instance string
}

// levelTable accumulates level usage in first-seen order.
type levelTable struct {
	order     []string
	byName    map[string]*Node
	relations []relation
}

func newLevelTable() *levelTable {
	return &levelTable{byName: make(map[string]*Node)}
}

func (t *levelTable) add(kind EdgeKind, level, instance string) {
	n, ok := t.byName[level]
	if !ok {
		n = &Node{
			ID:    LevelID(level),
			Kind:  NodeLevel,
			Label: level,
			Shape: ShapeEllipse,
			Class: ClassLevel,
			Level: level,
		}
		t.byName[level] = n
		t.order = append(t.order, level)
	}
	switch kind {
	case EdgeRead:
		if slices.Contains(n.Readers, instance) {
			return
		}
		n.Readers = append(n.Readers, instance)
	case EdgeWrite:
		if slices.Contains(n.Writers, instance) {
			return
		}
		n.Writers = append(n.Writers, instance)
	}
	t.relations = append(t.relations, relation{kind: kind, level: level, instance: instance})
}

// Build constructs the dependency graph of cfg using the types in cat.
func Build(ctx context.Context, cfg *model.Config, cat *catalog.Catalog, opts Options) *Graph {
	logger := ctxlog.FromContext(ctx)
	g := newGraph(opts.Collapse)

	var members []*model.Instance
	for _, inst := range cfg.Instances {
		if slices.Contains(opts.SkipTypes, inst.TypeName) {
			continue
		}
		role, ok := cat.NearestAncestor(inst.TypeName, opts.Roles)
		if !ok {
			role = opts.DefaultRole
		}
		g.store.AddNode(ComponentID(inst.Name), &Node{
			ID:         ComponentID(inst.Name),
			Kind:       NodeComponent,
			Label:      inst.Name + ":" + inst.TypeName,
			Shape:      ShapeRect,
			Class:      ClassComponent,
			Instance:   inst.Name,
			TypeName:   inst.TypeName,
			Role:       role,
			Definition: inst.Definition(),
		})
		members = append(members, inst)
	}

	levels := newLevelTable()
	var messages []*Edge
	for _, inst := range members {
		for _, field := range cat.InheritedList(inst.TypeName, readsOf) {
			for _, level := range levelNames(logger, cat, inst, field) {
				levels.add(EdgeRead, level, inst.Name)
			}
		}
		for _, field := range cat.InheritedList(inst.TypeName, writesOf) {
			for _, level := range levelNames(logger, cat, inst, field) {
				levels.add(EdgeWrite, level, inst.Name)
			}
		}
		for _, field := range cat.InheritedList(inst.TypeName, sendsOf) {
			for _, target := range messageTargets(logger, cat, g, inst, field) {
				messages = append(messages, &Edge{
					From:           ComponentID(inst.Name),
					To:             ComponentID(target),
					Kind:           EdgeMessage,
					Class:          ClassMessages,
					ArrowheadClass: ArrowheadMessages,
				})
			}
		}
	}

	if opts.Collapse {
		for _, name := range levels.order {
			lvl := levels.byName[name]
			for _, w := range lvl.Writers {
				for _, r := range lvl.Readers {
					g.addEdge(logger, &Edge{
						From:           ComponentID(w),
						To:             ComponentID(r),
						Kind:           EdgeDataflow,
						Label:          name,
						ArrowheadClass: ArrowheadDefault,
					})
				}
			}
		}
	} else {
		for _, name := range levels.order {
			lvl := levels.byName[name]
			lvl.Orphaned = len(lvl.Readers) == 0 || len(lvl.Writers) == 0
			g.store.AddNode(lvl.ID, lvl)
		}
		for _, rel := range levels.relations {
			e := &Edge{Kind: rel.kind, ArrowheadClass: ArrowheadDefault}
			if rel.kind == EdgeRead {
				e.From, e.To = LevelID(rel.level), ComponentID(rel.instance)
			} else {
				e.From, e.To = ComponentID(rel.instance), LevelID(rel.level)
			}
			g.addEdge(logger, e)
		}
	}

	for _, e := range messages {
		g.addEdge(logger, e)
	}

	logger.Debug("Built dependency graph.",
		"components", len(members),
		"levels", len(levels.order),
		"messages", len(messages),
		"collapsed", opts.Collapse,
	)
	return g
}

func (g *Graph) addEdge(logger *slog.Logger, e *Edge) {
	if err := g.store.AddEdge(e.From, e.To, e.Name(), e); err != nil {
		logger.Debug("Dropping edge.", "from", e.From, "to", e.To, "error", err)
	}
}

func readsOf(t *catalog.TypeInfo) []string  { return t.ReadsFromLevelFields }
func writesOf(t *catalog.TypeInfo) []string { return t.WritesToLevelFields }
func sendsOf(t *catalog.TypeInfo) []string  { return t.SendsMessagesFields }

// levelNames returns the level names held by field on inst. Level lists are
// separated by ";".
func levelNames(logger *slog.Logger, cat *catalog.Catalog, inst *model.Instance, field string) []string {
	fv, ok := inst.FieldValue(cat, field)
	if !ok {
		logger.Debug("Skipping level field without value.", "instance", inst.Name, "field", field)
		return nil
	}
	items, ok := value.ParseArray(value.Text(fv.Value), value.TypeString)
	if !ok {
		logger.Debug("Skipping malformed level list.", "instance", inst.Name, "field", field)
		return nil
	}
	var out []string
	for _, item := range items {
		if name := value.Text(item); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// messageTargets returns the instances named by field on inst that have a
// component node. Target lists are separated by "," or ";".
func messageTargets(logger *slog.Logger, cat *catalog.Catalog, g *Graph, inst *model.Instance, field string) []string {
	fv, ok := inst.FieldValue(cat, field)
	if !ok {
		logger.Debug("Skipping message field without value.", "instance", inst.Name, "field", field)
		return nil
	}
	var out []string
	for _, target := range value.ParseList(value.Text(fv.Value), ',', ';') {
		if !g.store.HasNode(ComponentID(target)) {
			logger.Debug("Skipping message to unknown instance.", "instance", inst.Name, "target", target)
			continue
		}
		if !slices.Contains(out, target) {
			out = append(out, target)
		}
	}
	return out
}
