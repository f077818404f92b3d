package entities

// Metadata is what the external book sources contribute to a new catalog entry.
type Metadata struct {
	Authors       Authors
	Publisher     Text
	PublishedDate Text
	Language      Languages
	Summary       Text
}
