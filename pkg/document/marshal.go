package document

import "encoding/json"

// The wire format is a JSON object with snake_case keys; absent optional
// fields are omitted entirely, never emitted as empty values. Extra keys
// captured at parse time are merged back at the same level, so a document
// survives parse -> serialize -> parse without gaining or losing fields.

// MarshalJSON emits the document wire format. RawContent and Metrics are
// diagnostics, not wire data, and are skipped.
func (d Document) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 8+len(d.Extra))
	m["version"] = d.Version
	if d.Layout != nil {
		m["layout"] = *d.Layout
	}
	if d.Requires != nil {
		m["requires"] = d.Requires
	}
	if d.Metadata != nil {
		m["metadata"] = d.Metadata
	}
	if d.CSP != nil {
		m["csp"] = *d.CSP
	}
	if d.Manifest != nil {
		m["manifest"] = d.Manifest
	}
	if d.ServiceWorker != nil {
		m["service_worker"] = *d.ServiceWorker
	}
	mergeExtra(m, d.Extra)
	return json.Marshal(m)
}

// UnmarshalJSON delegates to Parse so json.Unmarshal(&doc) enforces the same
// contract as the parser, including RawContent and metrics.
func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func (n LayoutNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 8+len(n.Extra))
	m["type"] = n.Type
	putString(m, "text", n.Text)
	putInt(m, "level", n.Level)
	if n.Children != nil {
		m["children"] = n.Children
	}
	if n.Action != nil {
		m["action"] = *n.Action
	}
	putString(m, "destination", n.Destination)
	putString(m, "id", n.ID)
	putString(m, "placeholder", n.Placeholder)
	putString(m, "source", n.Source)
	putBool(m, "controls", n.Controls)
	putBool(m, "autoplay", n.Autoplay)
	putInt(m, "width", n.Width)
	putInt(m, "height", n.Height)
	if n.Responsive != nil {
		m["responsive"] = n.Responsive
	}
	if n.Animation != nil {
		m["animation"] = n.Animation
	}
	if n.Style != nil {
		m["style"] = n.Style
	}
	putString(m, "form_type", n.FormType)
	putBool(m, "required", n.Required)
	putInt(m, "min_length", n.MinLength)
	putInt(m, "max_length", n.MaxLength)
	putString(m, "pattern", n.Pattern)
	if n.TableData != nil {
		m["table_data"] = n.TableData
	}
	putString(m, "language", n.Language)
	putString(m, "aria_label", n.AriaLabel)
	putString(m, "role", n.Role)
	mergeExtra(m, n.Extra)
	return json.Marshal(m)
}

func (a Action) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 4+len(a.Extra))
	// A wire action whose "type" had a non-string value lives in Extra with
	// Type == ""; only then does Extra own the key.
	if _, shadowed := a.Extra["type"]; a.Type != "" || !shadowed {
		m["type"] = a.Type
	}
	putString(m, "key", a.Key)
	if a.Value != nil {
		m["value"] = a.Value
	}
	putString(m, "destination", a.Destination)
	putString(m, "input_id", a.InputID)
	putString(m, "media_id", a.MediaID)
	putString(m, "command", a.Command)
	putString(m, "form_id", a.FormID)
	putString(m, "extension_id", a.ExtensionID)
	putString(m, "download_url", a.DownloadURL)
	putString(m, "bookmark_url", a.BookmarkURL)
	putString(m, "search_query", a.SearchQuery)
	putString(m, "theme_name", a.ThemeName)
	mergeExtra(m, a.Extra)
	return json.Marshal(m)
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putInt(m map[string]any, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

// mergeExtra copies pass-through keys without overwriting typed fields.
func mergeExtra(m map[string]any, extra map[string]any) {
	for key, value := range extra {
		if _, taken := m[key]; !taken {
			m[key] = value
		}
	}
}
