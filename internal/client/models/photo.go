// Package models defines client-side data models of the gallery: photos,
// the authenticated administrator and aggregate statistics.
package models

import (
	"encoding/json"
	"slices"
	"time"
)

// Category classifies a photo. The backend accepts a fixed set of values.
type Category string

const (
	CategoryGeneral      Category = "general"
	CategoryLandscapes   Category = "paisajes"
	CategoryPortraits    Category = "retratos"
	CategoryEvents       Category = "eventos"
	CategoryMacro        Category = "macro"
	CategoryArchitecture Category = "arquitectura"
	CategoryNature       Category = "naturaleza"
	CategoryOther        Category = "otros"
)

// DefaultCategory is assigned by the backend when an upload carries none.
const DefaultCategory = CategoryGeneral

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryLandscapes,
	CategoryPortraits,
	CategoryEvents,
	CategoryMacro,
	CategoryArchitecture,
	CategoryNature,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Photo is one uploaded image as returned by the backend.
// Optional fields are left at their zero value when the backend omits them.
type Photo struct {
	// ID is assigned by the backend and never changed by the client.
	ID int64 `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// ImageURL is an absolute, fetchable location of the image.
	ImageURL string `json:"image_url"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size,omitempty"`
	MimeType string `json:"mime_type,omitempty"`

	UploadedAt time.Time `json:"uploaded_at"`

	// IsPublic controls whether the photo appears in the anonymous gallery.
	IsPublic bool `json:"is_public"`

	UploaderName string   `json:"uploader_name,omitempty"`
	Category     Category `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Clone returns a copy of p that shares no memory with it.
func (p Photo) Clone() Photo {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// ClonePhotos copies a photo list element by element.
func ClonePhotos(in []Photo) []Photo {
	if in == nil {
		return nil
	}
	out := make([]Photo, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// PhotoPatch is a partial photo. It is used both as the update request
// payload and to decode the fields the backend echoes back after an update:
// a nil field was not sent (or not echoed) and must be left untouched. A
// field echoed as JSON null is recorded as cleared and reset by Apply.
type PhotoPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
	FileName     *string    `json:"file_name,omitempty"`
	FileSize     *int64     `json:"file_size,omitempty"`
	MimeType     *string    `json:"mime_type,omitempty"`
	UploadedAt   *time.Time `json:"uploaded_at,omitempty"`
	IsPublic     *bool      `json:"is_public,omitempty"`
	UploaderName *string    `json:"uploader_name,omitempty"`
	Category     *Category  `json:"category,omitempty"`
	Tags         []string   `json:"tags,omitempty"`

	// cleared holds the json names of fields decoded from an explicit null.
	cleared map[string]struct{}
}

// UnmarshalJSON decodes the echoed fields and remembers which of them were
// sent as null. Unknown keys, id included, are ignored.
func (pp *PhotoPatch) UnmarshalJSON(data []byte) error {
	type plain PhotoPatch
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*pp = PhotoPatch(v)
	pp.cleared = nil
	for k, r := range raw {
		if string(r) != "null" || !patchFields[k] {
			continue
		}
		if pp.cleared == nil {
			pp.cleared = make(map[string]struct{})
		}
		pp.cleared[k] = struct{}{}
	}
	return nil
}

var patchFields = map[string]bool{
	"title": true, "description": true, "image_url": true, "file_name": true,
	"file_size": true, "mime_type": true, "uploaded_at": true, "is_public": true,
	"uploader_name": true, "category": true, "tags": true,
}

// Cleared reports whether field, by its json name, was echoed as null.
func (pp PhotoPatch) Cleared(field string) bool {
	_, ok := pp.cleared[field]
	return ok
}

// Empty reports whether no field of the patch is set.
func (pp PhotoPatch) Empty() bool {
	return pp.Title == nil && pp.Description == nil && pp.ImageURL == nil &&
		pp.FileName == nil && pp.FileSize == nil && pp.MimeType == nil &&
		pp.UploadedAt == nil && pp.IsPublic == nil && pp.UploaderName == nil &&
		pp.Category == nil && pp.Tags == nil && len(pp.cleared) == 0
}

// Apply merges the set fields of pp into p and resets the cleared ones to
// their zero value. The identifier is never touched.
func (pp PhotoPatch) Apply(p *Photo) {
	for k := range pp.cleared {
		switch k {
		case "title":
			p.Title = ""
		case "description":
			p.Description = ""
		case "image_url":
			p.ImageURL = ""
		case "file_name":
			p.FileName = ""
		case "file_size":
			p.FileSize = 0
		case "mime_type":
			p.MimeType = ""
		case "uploaded_at":
			p.UploadedAt = time.Time{}
		case "is_public":
			p.IsPublic = false
		case "uploader_name":
			p.UploaderName = ""
		case "category":
			p.Category = ""
		case "tags":
			p.Tags = nil
		}
	}
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
	if pp.FileName != nil {
		p.FileName = *pp.FileName
	}
	if pp.FileSize != nil {
		p.FileSize = *pp.FileSize
	}
	if pp.MimeType != nil {
		p.MimeType = *pp.MimeType
	}
	if pp.UploadedAt != nil {
		p.UploadedAt = *pp.UploadedAt
	}
	if pp.IsPublic != nil {
		p.IsPublic = *pp.IsPublic
	}
	if pp.UploaderName != nil {
		p.UploaderName = *pp.UploaderName
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Tags != nil {
		p.Tags = slices.Clone(pp.Tags)
	}
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
