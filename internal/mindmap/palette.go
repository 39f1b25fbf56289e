package mindmap

// Palette is the ordered set of category colors.
var Palette = []string{"#8B5CF6", "#EC4899", "#10B981", "#3B82F6", "#F59E0B", "#EF4444", "#6366F1"}

const (
	// RootColor is used for the root node.
	RootColor = "#1F2937"
	// ItemColor is used for card nodes; their edges carry the category color.
	ItemColor = "#6B7280"
)

// PaletteColor returns the color for the category at index i.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
