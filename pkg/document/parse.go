package document

import (
	"encoding/json"
	"fmt"
	"time"
)

// Parse validates raw document text into a Document.
//
// The walk is a single top-down recursive descent: one stack frame per tree
// depth, no node revisited. Only the REQUIRED structure is enforced strictly
// (see FormatError); every optional field is read permissively: an absent
// key yields an absent field, and a wrong-typed value for an optional field
// is tolerated and carried through Extra rather than rejected. The asymmetry
// keeps the format forward-compatible with renderer-specific fields this
// parser does not know.
//
// Parse has no side effects beyond constructing the tree; the parse duration
// is attached to the returned Document as a metric, not logged here.
func Parse(data []byte) (*Document, error) {
	start := time.Now()

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, syntaxError(err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, schemaError("", "document must be an object")
	}

	version, ok := obj["version"].(string)
	if !ok || version != Version {
		return nil, versionError(obj["version"])
	}

	rawLayout, ok := obj["layout"]
	if !ok {
		return nil, schemaError("", "missing layout")
	}
	layout, err := parseNode(rawLayout, "layout")
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Version:    version,
		Layout:     layout,
		RawContent: string(data),
	}
	for key, value := range obj {
		switch key {
		case "version", "layout":
			continue
		case "requires":
			if ss, ok := toStringSlice(value); ok {
				doc.Requires = ss
				continue
			}
		case "metadata":
			if m, ok := value.(map[string]any); ok {
				doc.Metadata = m
				continue
			}
		case "csp":
			if s, ok := value.(string); ok {
				doc.CSP = &s
				continue
			}
		case "manifest":
			if m, ok := value.(map[string]any); ok {
				doc.Manifest = m
				continue
			}
		case "service_worker":
			if s, ok := value.(string); ok {
				doc.ServiceWorker = &s
				continue
			}
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]any)
		}
		doc.Extra[key] = value
	}

	doc.Metrics = Metrics{ParseDuration: time.Since(start)}
	return doc, nil
}

// ParseString is Parse over a string body.
func ParseString(text string) (*Document, error) {
	return Parse([]byte(text))
}

func parseNode(value any, path string) (*LayoutNode, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, schemaError(path, "layout node must be an object")
	}

	kind, ok := obj["type"].(string)
	if !ok {
		return nil, schemaError(path, `layout node must have a string "type"`)
	}
	node := &LayoutNode{Type: kind}

	if rawAction, present := obj["action"]; present {
		actionObj, ok := rawAction.(map[string]any)
		if !ok {
			return nil, schemaError(path, `"action" must be an object`)
		}
		node.Action = parseAction(actionObj)
	}

	if rawChildren, present := obj["children"]; present {
		arr, ok := rawChildren.([]any)
		if !ok {
			return nil, schemaError(path, `"children" must be an array`)
		}
		children := make([]LayoutNode, 0, len(arr))
		for i, rawChild := range arr {
			child, err := parseNode(rawChild, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			children = append(children, *child)
		}
		node.Children = children
	}

	for key, v := range obj {
		switch key {
		case "type", "action", "children":
			continue
		case "text":
			if s, ok := v.(string); ok {
				node.Text = &s
				continue
			}
		case "level":
			if n, ok := toInt(v); ok {
				node.Level = &n
				continue
			}
		case "destination":
			if s, ok := v.(string); ok {
				node.Destination = &s
				continue
			}
		case "id":
			if s, ok := v.(string); ok {
				node.ID = &s
				continue
			}
		case "placeholder":
			if s, ok := v.(string); ok {
				node.Placeholder = &s
				continue
			}
		case "source":
			if s, ok := v.(string); ok {
				node.Source = &s
				continue
			}
		case "controls":
			if b, ok := v.(bool); ok {
				node.Controls = &b
				continue
			}
		case "autoplay":
			if b, ok := v.(bool); ok {
				node.Autoplay = &b
				continue
			}
		case "width":
			if n, ok := toInt(v); ok {
				node.Width = &n
				continue
			}
		case "height":
			if n, ok := toInt(v); ok {
				node.Height = &n
				continue
			}
		case "responsive":
			if m, ok := v.(map[string]any); ok {
				node.Responsive = m
				continue
			}
		case "animation":
			if m, ok := v.(map[string]any); ok {
				node.Animation = m
				continue
			}
		case "style":
			if m, ok := toStringMap(v); ok {
				node.Style = m
				continue
			}
		case "form_type":
			if s, ok := v.(string); ok {
				node.FormType = &s
				continue
			}
		case "required":
			if b, ok := v.(bool); ok {
				node.Required = &b
				continue
			}
		case "min_length":
			if n, ok := toInt(v); ok {
				node.MinLength = &n
				continue
			}
		case "max_length":
			if n, ok := toInt(v); ok {
				node.MaxLength = &n
				continue
			}
		case "pattern":
			if s, ok := v.(string); ok {
				node.Pattern = &s
				continue
			}
		case "table_data":
			if rows, ok := toTable(v); ok {
				node.TableData = rows
				continue
			}
		case "language":
			if s, ok := v.(string); ok {
				node.Language = &s
				continue
			}
		case "aria_label":
			if s, ok := v.(string); ok {
				node.AriaLabel = &s
				continue
			}
		case "role":
			if s, ok := v.(string); ok {
				node.Role = &s
				continue
			}
		}
		if node.Extra == nil {
			node.Extra = make(map[string]any)
		}
		node.Extra[key] = v
	}

	return node, nil
}

// parseAction never fails: the action object's shape was already checked and
// every payload field is optional. A wire object without "type" yields
// Type == "".
func parseAction(obj map[string]any) *Action {
	action := &Action{}
	if s, ok := obj["type"].(string); ok {
		action.Type = s
	}

	for key, v := range obj {
		switch key {
		case "type":
			if _, ok := v.(string); ok {
				continue
			}
		case "value":
			action.Value = v
			continue
		case "key":
			if s, ok := v.(string); ok {
				action.Key = &s
				continue
			}
		case "destination":
			if s, ok := v.(string); ok {
				action.Destination = &s
				continue
			}
		case "input_id":
			if s, ok := v.(string); ok {
				action.InputID = &s
				continue
			}
		case "media_id":
			if s, ok := v.(string); ok {
				action.MediaID = &s
				continue
			}
		case "command":
			if s, ok := v.(string); ok {
				action.Command = &s
				continue
			}
		case "form_id":
			if s, ok := v.(string); ok {
				action.FormID = &s
				continue
			}
		case "extension_id":
			if s, ok := v.(string); ok {
				action.ExtensionID = &s
				continue
			}
		case "download_url":
			if s, ok := v.(string); ok {
				action.DownloadURL = &s
				continue
			}
		case "bookmark_url":
			if s, ok := v.(string); ok {
				action.BookmarkURL = &s
				continue
			}
		case "search_query":
			if s, ok := v.(string); ok {
				action.SearchQuery = &s
				continue
			}
		case "theme_name":
			if s, ok := v.(string); ok {
				action.ThemeName = &s
				continue
			}
		}
		if action.Extra == nil {
			action.Extra = make(map[string]any)
		}
		action.Extra[key] = v
	}

	return action
}

// toInt accepts JSON numbers that are whole values. encoding/json decodes
// every number into float64.
func toInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int(f), true
}

func toStringSlice(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func toStringMap(v any) (map[string]string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[k] = s
	}
	return out, true
}

func toTable(v any) ([][]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(arr))
	for _, rawRow := range arr {
		row, ok := toStringSlice(rawRow)
		if !ok {
			return nil, false
		}
		rows = append(rows, row)
	}
	return rows, true
}
