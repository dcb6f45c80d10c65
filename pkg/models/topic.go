package models

// Topic groups articles. Slug is both the key and the public identifier.
type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
