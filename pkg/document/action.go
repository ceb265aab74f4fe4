package document

// Recognized action types. The set is open: unrecognized types parse and
// serialize normally and are surfaced to the host unhandled.
const (
	// ActionNavigate loads the document at Destination.
	ActionNavigate = "navigate"

	// ActionStore writes Key/Value into the host's key-value store.
	ActionStore = "store"

	// ActionMediaControl drives the media element MediaID with Command.
	ActionMediaControl = "media_control"

	// ActionSearch runs a web search for SearchQuery (prompting when absent).
	ActionSearch = "search"

	// ActionSetTheme switches the active theme to ThemeName.
	ActionSetTheme = "set_theme"

	// ActionShowStats displays browser statistics.
	ActionShowStats = "show_stats"

	// ActionShowPermissions displays the active tab's permissions.
	ActionShowPermissions = "show_permissions"

	// ActionShowHistory displays recent visits.
	ActionShowHistory = "show_history"

	// ActionClearCache purges the fetch cache.
	ActionClearCache = "clear_cache"

	// ActionFormSubmit submits the form identified by FormID.
	ActionFormSubmit = "form_submit"
)

// Media transport commands synthesized for audio/video nodes, in the exact
// catalog order.
const (
	CommandPlay  = "play"
	CommandPause = "pause"
	CommandStop  = "stop"
)

// Action describes one user-triggerable intent. It is a flat, open-ended
// record: Type names the intent and the payload fields it reads are a
// convention enforced at dispatch, not at parse time. Payload pointers are
// nil when the field was absent on the wire; absence is semantically distinct
// from an empty string. Actions are value types with no identity and must not
// be mutated after construction.
type Action struct {
	// Type is the wire "type". An action object without a "type" key parses
	// with Type == "".
	Type string

	Key         *string
	Value       any // arbitrary JSON value; "store" payloads carry numbers and objects
	Destination *string
	InputID     *string
	MediaID     *string
	Command     *string
	FormID      *string
	ExtensionID *string
	DownloadURL *string
	BookmarkURL *string
	SearchQuery *string
	ThemeName   *string

	// Extra holds unknown wire keys (and known keys whose value had an
	// unexpected type), retained verbatim for round-tripping. Never
	// interpreted.
	Extra map[string]any
}
