package library

// Builtin documents served for file:/// keys without touching the disk
// library. The welcome page is also the default home document.
const welcomeDocument = `{
  "version": "1.0",
  "metadata": {
    "title": "Nova Browser - Production Ready",
    "description": "Secure, fast, privacy-first browsing experience"
  },
  "layout": {
    "type": "column",
    "children": [
      {
        "type": "heading",
        "level": 1,
        "text": "🚀 Nova Browser - Production Ready"
      },
      {
        "type": "paragraph",
        "text": "Experience the next generation of secure, privacy-first browsing with real network capabilities."
      },
      {
        "type": "grid",
        "children": [
          {
            "type": "button",
            "text": "🔍 Web Search",
            "action": {"type": "search"}
          },
          {
            "type": "button",
            "text": "🌐 Example Site",
            "action": {"type": "navigate", "destination": "https://httpbin.org/json"}
          },
          {
            "type": "button",
            "text": "📊 Browser Status",
            "action": {"type": "show_stats"}
          },
          {
            "type": "button",
            "text": "🔄 Reload",
            "action": {"type": "navigate", "destination": "file:///welcome.nova"}
          }
        ]
      },
      {
        "type": "text",
        "text": "Try these commands: 'new' for new tab, 'tabs' to list tabs, 'status' for info"
      }
    ]
  }
}`

// WelcomeKey is the local key of the builtin home document.
const WelcomeKey = "welcome.nova"

// Welcome returns the raw body of the builtin home document.
func Welcome() string { return welcomeDocument }

// Builtins are keyed by extension-trimmed id so welcome, welcome.nova
// and /welcome.nova all resolve.
func builtinDocuments() map[string]string {
	return map[string]string{
		"welcome": welcomeDocument,
	}
}

func builtinEntries() []Entry {
	return []Entry{{
		Key:         WelcomeKey,
		Title:       "Nova Browser - Production Ready",
		Description: "Secure, fast, privacy-first browsing experience",
	}}
}
