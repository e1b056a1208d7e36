package notion

import "time"

// QueryRequest is the body of POST /databases/{id}/query.
type QueryRequest struct {
	PageSize    int     `json:"page_size,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
	Filter      *Filter `json:"filter,omitempty"`
}

// QueryResponse is one page of query results.
type QueryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Page is a workspace record. Properties are decoded once here; everything
// past this boundary works with named record fields, never string lookups.
type Page struct {
	ID             string              `json:"id"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// Property is the tagged union the workspace API uses for every value kind.
// Only the member named by Type is populated.
type Property struct {
	Type string `json:"type"`

	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Status   *SelectOption `json:"status,omitempty"`
	Number   *float64      `json:"number,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
	Relation []Relation    `json:"relation,omitempty"`
	Files    []File        `json:"files,omitempty"`

	LastEditedTime *time.Time `json:"last_edited_time,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

type Relation struct {
	ID string `json:"id"`
}

type File struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	File     *HostedFile   `json:"file,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
}

type HostedFile struct {
	URL string `json:"url"`
}

type ExternalFile struct {
	URL string `json:"url"`
}

func (p Page) prop(name string) Property {
	return p.Properties[name]
}

// PlainText concatenates the text fragments of a title or rich_text property.
func (p Property) PlainText() string {
	parts := p.Title
	if p.Type == "rich_text" {
		parts = p.RichText
	}
	out := ""
	for _, rt := range parts {
		out += rt.PlainText
	}
	return out
}

// SelectName returns the chosen option for select and status properties.
func (p Property) SelectName() string {
	switch {
	case p.Select != nil:
		return p.Select.Name
	case p.Status != nil:
		return p.Status.Name
	}
	return ""
}

func (p Property) NumberValue() float64 {
	if p.Number == nil {
		return 0
	}
	return *p.Number
}

func (p Property) DateStart() string {
	if p.Date == nil {
		return ""
	}
	return p.Date.Start
}

func (p Property) DateEnd() string {
	if p.Date == nil || p.Date.End == nil {
		return ""
	}
	return *p.Date.End
}

// FirstRelationID returns the first linked page id, or "" when the relation
// is empty.
func (p Property) FirstRelationID() string {
	if len(p.Relation) == 0 {
		return ""
	}
	return p.Relation[0].ID
}

// FirstFileURL returns the URL of the first attached file, hosted or
// external.
func (p Property) FirstFileURL() string {
	if len(p.Files) == 0 {
		return ""
	}
	f := p.Files[0]
	if f.File != nil {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}
