package model

// AlertField represents a titled section within an operator alert.
type AlertField struct {
	Name   string
	Value  string
	Inline bool
}

// Alert is a transport-agnostic message for operator channels.
type Alert struct {
	Title       string
	Description string
	Fields      []AlertField
}
