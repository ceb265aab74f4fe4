package document

// Node kinds with dedicated rendering and action-collection behavior. The set
// is open: any other kind renders through a generic fallback and contributes
// no synthesized actions.
const (
	NodeTypeHeading = "heading"
	// NodeTypeParagraph and NodeTypeText are aliases for the same flowing-text
	// kind; both appear in the wild.
	NodeTypeParagraph = "paragraph"
	NodeTypeText      = "text"
	NodeTypeButton    = "button"
	NodeTypeLink      = "link"
	NodeTypeInput     = "input"
	NodeTypeForm      = "form"
	NodeTypeTable     = "table"
	NodeTypeCode      = "code"
	NodeTypeImage     = "image"
	NodeTypeAudio     = "audio"
	NodeTypeVideo     = "video"
	NodeTypeColumn    = "column"
	NodeTypeRow       = "row"
	NodeTypeGrid      = "grid"
)

// LayoutNode is one node of the recursive layout tree: a kind discriminator
// plus a superset of optional fields scoped by kind. A single struct is used
// for all kinds so parsing, rendering and serialization stay symmetric.
//
// Optional scalar fields are pointers; nil means the key was absent on the
// wire. Children is nil when absent and non-nil (possibly empty) when the
// document carried a "children" array; the two states are distinct and both
// survive a round trip.
//
// A tree is acyclic and finite: it is only ever produced by recursive
// deserialization of a bounded-depth JSON document. Nodes are shared-read
// after parsing and must not be mutated.
type LayoutNode struct {
	// Type is the wire "type" discriminator, always present.
	Type string

	Text     *string
	Level    *int // heading level, unclamped; absent means 1
	Children []LayoutNode
	Action   *Action // explicit action attached to this node

	Destination *string
	// ID is opaque and unique only by author convention; action collection
	// and dispatch rely on it to target inputs, media and forms.
	ID          *string
	Placeholder *string
	Source      *string
	Controls    *bool
	Autoplay    *bool
	Width       *int
	Height      *int

	Responsive map[string]any
	Animation  map[string]any
	Style      map[string]string

	FormType  *string
	Required  *bool
	MinLength *int
	MaxLength *int
	Pattern   *string

	TableData [][]string
	Language  *string
	AriaLabel *string
	Role      *string

	// Extra holds unknown wire keys (and known keys whose value had an
	// unexpected type), retained verbatim for round-tripping.
	Extra map[string]any
}

// IsParagraph reports whether the node is flowing text under either alias.
func (n *LayoutNode) IsParagraph() bool {
	return n.Type == NodeTypeParagraph || n.Type == NodeTypeText
}
