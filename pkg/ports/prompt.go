package ports

// Prompter is the host side of interactive actions: it asks the user
// for one line of input and shows one-line notices. Surfaces (CLI, TUI)
// implement it; non-interactive hosts pass nil to Dispatch, which then
// fails any action that would need to prompt.
type Prompter interface {
	Prompt(label string) (string, error)
	Notify(line string)
}
