// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

// Metadata fields read when deriving display values.
const (
	FieldTitle               = "dc.title"
	FieldDescription         = "dc.description"
	FieldDescriptionAbstract = "dc.description.abstract"
	FieldDateIssued          = "dc.date.issued"
	FieldDate                = "dc.date"
)

// UntitledName is shown for entities with neither a title nor a name.
const UntitledName = "Untitled"

// UnknownAuthor is shown for items without any author-like field.
const UnknownAuthor = "Unknown Author"

// authorFields are consulted in order; the first populated one wins.
var authorFields = []string{
	"project.investigator",
	"dc.contributor.author",
	"dc.creator",
	"dc.contributor",
	"dc.publisher",
}

// DeriveDisplayName prefers the title metadata, then the plain name.
func DeriveDisplayName(resource Resource) string {
	if title, ok := resource.Metadata.First(FieldTitle); ok {
		return title
	}
	if resource.Name != "" {
		return resource.Name
	}
	return UntitledName
}

// DeriveDescription returns the description metadata, or "".
func DeriveDescription(resource Resource) string {
	if description, ok := resource.Metadata.First(FieldDescription); ok {
		return description
	}
	description, _ := resource.Metadata.First(FieldDescriptionAbstract)
	return description
}

// DeriveDate prefers the issued date, then the generic date, else "".
func DeriveDate(resource Resource) string {
	if issued, ok := resource.Metadata.First(FieldDateIssued); ok {
		return issued
	}
	date, _ := resource.Metadata.First(FieldDate)
	return date
}

// DeriveAuthor returns the first author-like metadata value.
func DeriveAuthor(resource Resource) string {
	for _, field := range authorFields {
		if author, ok := resource.Metadata.First(field); ok {
			return author
		}
	}
	return UnknownAuthor
}

func decorateCommunity(community Community) Community {
	community.DisplayName = DeriveDisplayName(community.Resource)
	community.Description = DeriveDescription(community.Resource)
	return community
}

func decorateCollection(collection Collection) Collection {
	collection.DisplayName = DeriveDisplayName(collection.Resource)
	collection.Description = DeriveDescription(collection.Resource)
	return collection
}

func decorateItem(item Item) Item {
	item.DisplayName = DeriveDisplayName(item.Resource)
	item.Description = DeriveDescription(item.Resource)
	item.Date = DeriveDate(item.Resource)
	item.Author = DeriveAuthor(item.Resource)
	return item
}
