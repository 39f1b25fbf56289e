package mindmap

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/matsen/prayermap/internal/geom"
	"github.com/matsen/prayermap/internal/journal"
)

// Mode selects what the category ring groups cards by.
type Mode string

const (
	ModeLists  Mode = "lists"
	ModePeople Mode = "people"
)

// ValidModes lists the supported grouping modes.
var ValidModes = []Mode{ModeLists, ModePeople}

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown map mode")

// ParseMode converts a user-supplied name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lists", "list":
		return ModeLists, nil
	case "people", "person":
		return ModePeople, nil
	default:
		return "", fmt.Errorf("%w %q: must be lists or people", ErrUnknownMode, s)
	}
}

// Seed placement defaults, in simulation units.
const (
	DefaultCategoryRadius   = 180
	DefaultItemRadius       = 150
	DefaultPersonItemRadius = 120
	DefaultItemSpread       = math.Pi / 2.5
	DefaultRootLabel        = "Prayer Journal"
)

// Options controls graph construction and seed placement.
type Options struct {
	Center           geom.Point
	RootLabel        string
	GeneralLabel     string  // bucket for cards with no person
	CategoryRadius   float64 // ring of categories around the root
	ItemRadius       float64 // ring of cards around a list
	PersonItemRadius float64 // ring of cards around a person
	ItemSpread       float64 // total arc (radians) a category's cards span
	HideAnswered     bool
}

// DefaultOptions returns options centered in an 800x600 view.
func DefaultOptions() Options {
	return Options{
		Center:           geom.Pt(400, 300),
		RootLabel:        DefaultRootLabel,
		GeneralLabel:     journal.GeneralBucket,
		CategoryRadius:   DefaultCategoryRadius,
		ItemRadius:       DefaultItemRadius,
		PersonItemRadius: DefaultPersonItemRadius,
		ItemSpread:       DefaultItemSpread,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RootLabel == "" {
		o.RootLabel = d.RootLabel
	}
	if o.GeneralLabel == "" {
		o.GeneralLabel = d.GeneralLabel
	}
	if o.CategoryRadius <= 0 {
		o.CategoryRadius = d.CategoryRadius
	}
	if o.ItemRadius <= 0 {
		o.ItemRadius = d.ItemRadius
	}
	if o.PersonItemRadius <= 0 {
		o.PersonItemRadius = d.PersonItemRadius
	}
	if o.ItemSpread <= 0 {
		o.ItemSpread = d.ItemSpread
	}
	return o
}

// cardRef is a card together with the list that owns it.
type cardRef struct {
	card   *journal.Card
	listID string
}

// Build constructs a seeded graph from snap. The snapshot is only read;
// node payloads point into it.
func Build(snap *journal.Snapshot, mode Mode, opts Options) Graph {
	opts = opts.withDefaults()
	b := &builder{
		opts: opts,
		seen: make(map[string]bool),
		g:    Graph{Center: opts.Center},
	}
	b.addNode(Node{
		ID:    RootID,
		Label: opts.RootLabel,
		Type:  NodeTypeRoot,
		Pos:   opts.Center,
		Color: RootColor,
	})

	if snap == nil {
		return b.g
	}

	switch mode {
	case ModePeople:
		b.buildPeople(snap)
	default:
		b.buildLists(snap)
	}
	return b.g
}

type builder struct {
	opts Options
	seen map[string]bool
	g    Graph
}

func (b *builder) buildLists(snap *journal.Snapshot) {
	step := categoryStep(len(snap.Lists))
	for i := range snap.Lists {
		list := &snap.Lists[i]
		color := PaletteColor(i)
		angle := float64(i)*step - math.Pi/2

		catPos := geom.Polar(b.opts.Center, b.opts.CategoryRadius, angle)
		catID := b.addNode(Node{
			ID:      "list-" + list.ID,
			Label:   list.Title,
			Type:    NodeTypeCategory,
			Pos:     catPos,
			Color:   color,
			Payload: Payload{List: list},
		})
		b.addEdge("edge-root-"+list.ID, RootID, catID, color)

		cards := b.visibleCards(list)
		b.addItems(catID, catPos, angle, b.opts.ItemRadius, cards, color, func(r cardRef) (string, string) {
			return "card-" + r.card.ID, "edge-" + list.ID + "-" + r.card.ID
		})
	}
}

func (b *builder) buildPeople(snap *journal.Snapshot) {
	var names []string
	groups := make(map[string][]cardRef)
	for i := range snap.Lists {
		list := &snap.Lists[i]
		for _, r := range b.visibleCards(list) {
			for _, name := range r.card.People(b.opts.GeneralLabel) {
				if _, ok := groups[name]; !ok {
					names = append(names, name)
				}
				groups[name] = append(groups[name], r)
			}
		}
	}

	step := categoryStep(len(names))
	for i, name := range names {
		color := PaletteColor(i)
		angle := float64(i)*step - math.Pi/2

		catPos := geom.Polar(b.opts.Center, b.opts.CategoryRadius, angle)
		catID := b.addNode(Node{
			ID:      "person-" + name,
			Label:   name,
			Type:    NodeTypeCategory,
			Pos:     catPos,
			Color:   color,
			Payload: Payload{Person: name},
		})
		b.addEdge("edge-root-"+name, RootID, catID, color)

		b.addItems(catID, catPos, angle, b.opts.PersonItemRadius, groups[name], color, func(r cardRef) (string, string) {
			return "card-" + name + "-" + r.card.ID, "edge-person-" + name + "-" + r.card.ID
		})
	}
}

// addItems places cards on an arc around their category, centered on the
// category's own angle from the root.
// A lone card sits at the start of the arc.
func (b *builder) addItems(catID string, catPos geom.Point, catAngle, radius float64, cards []cardRef, color string, ids func(cardRef) (string, string)) {
	spread := b.opts.ItemSpread
	start, step := catAngle-spread/2, 0.0
	if len(cards) > 1 {
		step = spread / float64(len(cards)-1)
	}

	for j, r := range cards {
		nodeID, edgeID := ids(r)
		angle := start + float64(j)*step
		id := b.addNode(Node{
			ID:      nodeID,
			Label:   r.card.Title,
			Type:    NodeTypeItem,
			Pos:     geom.Polar(catPos, radius, angle),
			Color:   ItemColor,
			Payload: Payload{Card: r.card, ListID: r.listID},
		})
		b.addEdge(edgeID, catID, id, color)
	}
}

func (b *builder) visibleCards(list *journal.List) []cardRef {
	refs := make([]cardRef, 0, len(list.Cards))
	for j := range list.Cards {
		c := &list.Cards[j]
		if b.opts.HideAnswered && c.IsAnswered {
			continue
		}
		refs = append(refs, cardRef{card: c, listID: list.ID})
	}
	return refs
}

// addNode appends n, suffixing its id if it collides with an earlier node
// (duplicate ids in the source data), and returns the id used.
func (b *builder) addNode(n Node) string {
	n.ID = b.unique(n.ID)
	b.g.Nodes = append(b.g.Nodes, n)
	return n.ID
}

func (b *builder) addEdge(id, source, target, color string) {
	b.g.Edges = append(b.g.Edges, Edge{
		ID:     b.unique(id),
		Source: source,
		Target: target,
		Color:  color,
	})
}

func (b *builder) unique(id string) string {
	out := id
	for n := 2; b.seen[out]; n++ {
		out = fmt.Sprintf("%s~%d", id, n)
	}
	b.seen[out] = true
	return out
}

func categoryStep(n int) float64 {
	if n < 1 {
		n = 1
	}
	return 2 * math.Pi / float64(n)
}
