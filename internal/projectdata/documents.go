package projectdata

// DocumentCategory names one of the lists in Documents.
type DocumentCategory string

const (
	Contracts DocumentCategory = "contracts"
	Permits   DocumentCategory = "permits"
	Technical DocumentCategory = "technical"
	Financial DocumentCategory = "financial"
)

// documentTypes lists the document types accepted in each category.
var documentTypes = map[DocumentCategory][]string{
	Contracts: {"contract", "agreement", "proposal", "quote"},
	Permits:   {"building_permit", "electrical_permit", "plumbing_permit", "zoning_approval"},
	Technical: {"specification", "manual", "warranty", "certificate"},
	Financial: {"invoice", "receipt", "payment_proof", "budget"},
}

// ParseDocumentCategory validates a category taken from a URL or payload.
func ParseDocumentCategory(s string) (DocumentCategory, bool) {
	c := DocumentCategory(s)
	_, ok := documentTypes[c]
	return c, ok
}

// AcceptsType reports whether typ is a known document type for c.
func (c DocumentCategory) AcceptsType(typ string) bool {
	for _, t := range documentTypes[c] {
		if t == typ {
			return true
		}
	}
	return false
}

// Documents holds the paperwork attached to a project, one list per category.
type Documents struct {
	Contracts []Document `json:"contracts,omitempty" validate:"omitempty,dive"`
	Permits   []Document `json:"permits,omitempty" validate:"omitempty,dive"`
	Technical []Document `json:"technical,omitempty" validate:"omitempty,dive"`
	Financial []Document `json:"financial,omitempty" validate:"omitempty,dive"`
}

// Document is a single file. Only the fields relevant to its category are set.
type Document struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
	Type string `json:"type" validate:"required"`

	// contracts
	SignedAt string `json:"signedAt,omitempty"`
	SignedBy string `json:"signedBy,omitempty"`
	Version  string `json:"version,omitempty"`

	// permits
	IssuedBy  string `json:"issuedBy,omitempty"`
	IssuedAt  string `json:"issuedAt,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected expired"`

	// technical
	Category string `json:"category,omitempty" validate:"omitempty,oneof=equipment materials installation maintenance"`

	// financial
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Date     string   `json:"date,omitempty"`
}

func (d *Documents) list(c DocumentCategory) *[]Document {
	switch c {
	case Contracts:
		return &d.Contracts
	case Permits:
		return &d.Permits
	case Technical:
		return &d.Technical
	case Financial:
		return &d.Financial
	}
	return nil
}

// IsEmpty reports whether no category holds a document.
func (d *Documents) IsEmpty() bool {
	return d == nil || len(d.Contracts)+len(d.Permits)+len(d.Technical)+len(d.Financial) == 0
}

// AddDocument appends doc to category. An unknown category returns docs as is.
func AddDocument(docs *Documents, category DocumentCategory, doc Document) *Documents {
	out := cloneDocuments(docs)
	l := out.list(category)
	if l == nil {
		return docs
	}
	*l = appended(*l, doc)
	return out
}

// RemoveDocument drops the document with docID from category. It returns docs
// itself when the category has no list. An emptied list is omitted and a
// document with no lists left collapses to nil.
func RemoveDocument(docs *Documents, category DocumentCategory, docID string) *Documents {
	if docs == nil {
		return nil
	}
	out := cloneDocuments(docs)
	l := out.list(category)
	if l == nil || *l == nil {
		return docs
	}
	*l = without(*l, func(d Document) bool { return d.ID == docID })
	if len(*l) == 0 {
		*l = nil
	}
	if out.IsEmpty() {
		return nil
	}
	return out
}

// FindDocument returns the document with id in category, if any.
func FindDocument(docs *Documents, category DocumentCategory, id string) (Document, bool) {
	if docs == nil {
		return Document{}, false
	}
	l := docs.list(category)
	if l == nil {
		return Document{}, false
	}
	return find(*l, func(d Document) bool { return d.ID == id })
}

func cloneDocuments(docs *Documents) *Documents {
	if docs == nil {
		return &Documents{}
	}
	out := *docs
	return &out
}
