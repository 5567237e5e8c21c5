package engine

// Contact is the mapping-relevant view of one decoded vCard.
// A nil pointer or nil slice means the property was absent from the card.
type Contact struct {
	Kind   *string
	Gender *string
	UID    *string

	// Name is the structured name (N property).
	Name *StructuredName

	// FormattedName is the display name (FN property). Only used as a fallback.
	FormattedName *string

	// Organization holds the ORG components; the first one is the company.
	Organization []string

	Emails []Email
	Phones []Phone

	Note *string

	// Birthday is the raw BDAY value, never parsed.
	Birthday *string
}

// StructuredName mirrors the five components of the N property.
// Components missing from the card are empty strings.
type StructuredName struct {
	Family     string
	Given      string
	Additional string
	Prefix     string
	Suffix     string
}

// Email is a single EMAIL property value.
type Email struct {
	Value string
}

// Phone is a single TEL property with its category tags, upper-cased.
type Phone struct {
	Value string
	Types []string
}

// HasType reports whether the phone carries the given (upper-case) category tag.
func (p Phone) HasType(tag string) bool {
	for _, t := range p.Types {
		if t == tag {
			return true
		}
	}
	return false
}

// stringPtr returns a pointer to a copy of s.
func stringPtr(s string) *string {
	return &s
}

// valueOf dereferences an optional string, defaulting to "".
func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
