package nova

// Version is the engine version reported by the CLI, the HTTP API and
// the MCP server. Release tooling rewrites it at tag time.
const Version = "1.0.0"
