package cli

const helpMarkdown = `# 📖 NOVA BROWSER HELP

## Navigation

- Enter an action number to interact with the current page
- ` + "`new`" + ` opens a URL in a new tab, ` + "`tab N`" + ` switches tabs
- ` + "`back`" + ` returns to the previous page, ` + "`reload`" + ` refreshes

## Document Types

- ` + "`.nova`" + ` files use the native JSON layout format
- ` + "`http://`" + ` and ` + "`https://`" + ` URLs are fetched from the web
- ` + "`file:///`" + ` URLs resolve against the local document library

## Network Features

- HTTP responses are cached and rate limited
- Slow origins are cut off by request timeouts
- Response bodies are capped to protect memory

## Security

- Terminal input is validated and sanitized
- Unknown URL schemes render an error page instead of loading
- Pages declare permissions up front via their ` + "`requires`" + ` list
`
