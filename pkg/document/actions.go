package document

// mediaCommands is the fixed synthesis order for audio/video transport
// actions. Reordering it would renumber every menu built from the catalog.
var mediaCommands = [...]string{CommandPlay, CommandPause, CommandStop}

// CollectActions walks the tree and returns the ordered action catalog: every
// explicit and synthesized user-triggerable intent, in the order a rendered
// page suggests them. The walk is pure and deterministic. Hosts present the
// result numbered 1..N and resolve a user's numeric choice by indexing into
// it, so the same tree must always yield the same sequence.
//
// Traversal is pre-order depth-first, left-to-right over children, and at
// each node in this fixed order:
//
//  1. the node's explicit Action, if present;
//  2. a form with an id: {form_submit, form_id};
//  3. audio/video with an id whose controls are true or absent (controls
//     default to present): {media_control, media_id, command} for play,
//     pause, stop;
//  4. a link with a destination: {navigate, destination};
//  5. the children, in array order.
//
// The per-node order is load-bearing: a link carrying an explicit action
// emits two entries, explicit first, and a form's synthesized submit
// precedes anything contributed by its children.
func CollectActions(root *LayoutNode) []Action {
	var actions []Action
	collectActions(root, &actions)
	return actions
}

func collectActions(node *LayoutNode, actions *[]Action) {
	if node == nil {
		return
	}

	if node.Action != nil {
		*actions = append(*actions, *node.Action)
	}

	if node.Type == NodeTypeForm && present(node.ID) {
		id := *node.ID
		*actions = append(*actions, Action{Type: ActionFormSubmit, FormID: &id})
	}

	if (node.Type == NodeTypeAudio || node.Type == NodeTypeVideo) &&
		(node.Controls == nil || *node.Controls) && present(node.ID) {
		for _, command := range mediaCommands {
			id := *node.ID
			cmd := command
			*actions = append(*actions, Action{Type: ActionMediaControl, MediaID: &id, Command: &cmd})
		}
	}

	if node.Type == NodeTypeLink && present(node.Destination) {
		dest := *node.Destination
		*actions = append(*actions, Action{Type: ActionNavigate, Destination: &dest})
	}

	for i := range node.Children {
		collectActions(&node.Children[i], actions)
	}
}

// present reports a field that is both on the wire and non-empty; empty
// strings do not target anything.
func present(s *string) bool {
	return s != nil && *s != ""
}
