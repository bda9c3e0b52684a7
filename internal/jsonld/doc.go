// Package jsonld builds the schema.org documents embedded in pages as
// <script type="application/ld+json">.
package jsonld

import (
	"encoding/json"
	"fmt"
	"html/template"
)

// Context is the @context of every top-level document.
const Context = "https://schema.org"

// Organization is a schema.org Organization. Nested organizations leave Context empty.
type Organization struct {
	Context    string `json:"@context,omitempty"`
	Type       string `json:"@type"`
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`
	Logo       string `json:"logo,omitempty"`
	SameAs     string `json:"sameAs,omitempty"`
	AreaServed *City  `json:"areaServed,omitempty"`
}

// City is the areaServed of the site organization.
type City struct {
	Type    string        `json:"@type"`
	Name    string        `json:"name"`
	Address PostalAddress `json:"address"`
}

// PostalAddress is a schema.org PostalAddress.
type PostalAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressCountry  string `json:"addressCountry"`
}

// ListItem is an entry of an ItemList or BreadcrumbList.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Marshal encodes doc as compact JSON for a script element. encoding/json
// escapes <, > and & so the payload cannot close the surrounding tag.
func Marshal(doc any) (template.JS, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON-LD: %w", err)
	}
	return template.JS(data), nil //nolint:gosec // payload is escaped by encoding/json
}
