package dto

import (
	"time"

	"github.com/agentdms/admin/models"
)

// FieldValueResponse is one field value on a document.
type FieldValueResponse struct {
	FieldID   string  `json:"field_id"`
	FieldName string  `json:"field_name,omitempty"`
	Value     *string `json:"value"`
}

type PageResponse struct {
	PageNumber    int     `json:"page_number"`
	ImagePath     string  `json:"image_path"`
	ThumbnailPath *string `json:"thumbnail_path,omitempty"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
}

func FromPage(p models.DocumentPage) PageResponse {
	return PageResponse{
		PageNumber:    p.PageNumber,
		ImagePath:     p.ImagePath,
		ThumbnailPath: p.ThumbnailPath,
		Width:         p.Width,
		Height:        p.Height,
	}
}

// DocumentResponse represents a document.
type DocumentResponse struct {
	ID          string               `json:"id"`
	ProjectID   string               `json:"project_id"`
	FileName    string               `json:"file_name"`
	StoragePath string               `json:"storage_path"`
	MimeType    *string              `json:"mime_type,omitempty"`
	FileSize    int64                `json:"file_size"`
	Values      []FieldValueResponse `json:"values,omitempty"`
	Pages       []PageResponse       `json:"pages,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	ModifiedAt  time.Time            `json:"modified_at"`
}

// FromDocument converts a document. Only values whose field appears in
// visible are included, ordered like visible.
func FromDocument(d models.Document, visible []models.CustomField) DocumentResponse {
	resp := DocumentResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		FileName:    d.FileName,
		StoragePath: d.StoragePath,
		MimeType:    d.MimeType,
		FileSize:    d.FileSize,
		CreatedAt:   d.CreatedAt,
		ModifiedAt:  d.ModifiedAt,
	}
	byField := make(map[string]*string, len(d.Values))
	for _, v := range d.Values {
		byField[v.CustomFieldID] = v.Value
	}
	for _, f := range visible {
		if val, ok := byField[f.ID]; ok {
			resp.Values = append(resp.Values, FieldValueResponse{FieldID: f.ID, FieldName: f.Name, Value: val})
		}
	}
	for _, p := range d.Pages {
		resp.Pages = append(resp.Pages, FromPage(p))
	}
	return resp
}

func FromDocuments(docs []models.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = FromDocument(d, nil)
	}
	return out
}
