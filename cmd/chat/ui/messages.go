package ui

// Tea messages for event handling

// TurnEndMsg signals the in-flight turn reached a terminal outcome.
type TurnEndMsg struct{}
