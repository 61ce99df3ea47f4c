// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the usecase-scout pipeline:
// sessions holding generated use cases, dataset records returned by search
// providers, and the configuration of each component.
package types

// DatasetRecord is one catalog entry returned by a dataset-search provider.
type DatasetRecord struct {
	// Identifier is the provider's ID for the entry (Hugging Face repo ID, Kaggle ref).
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the display title. Providers without titles reuse the identifier.
	Title string `json:"title" yaml:"title"`

	// URL links to the entry's page on the provider site.
	URL string `json:"url" yaml:"url"`

	// Provider names the provider that returned the record (e.g. "huggingface", "kaggle").
	Provider string `json:"provider" yaml:"provider"`

	// Rank is the 1-based position in the provider's response.
	Rank int `json:"rank" yaml:"rank"`
}
