package models

// Document is a stored file belonging to exactly one project.
type Document struct {
	ID          string               `gorm:"column:id;primaryKey" json:"id"`
	ProjectID   string               `gorm:"column:project_id" json:"project_id"`
	FileName    string               `gorm:"column:file_name" json:"file_name"`
	StoragePath string               `gorm:"column:storage_path" json:"storage_path"`
	MimeType    *string              `gorm:"column:mime_type" json:"mime_type,omitempty"`
	FileSize    int64                `gorm:"column:file_size" json:"file_size"`
	Values      []DocumentFieldValue `gorm:"-" json:"values,omitempty"`
	Pages       []DocumentPage       `gorm:"-" json:"pages,omitempty"`
	Audit
}

func (Document) TableName() string { return "documents" }

// DocumentFieldValue is the value of one custom field on one document.
type DocumentFieldValue struct {
	ID            string  `gorm:"column:id;primaryKey" json:"id"`
	DocumentID    string  `gorm:"column:document_id" json:"document_id"`
	CustomFieldID string  `gorm:"column:custom_field_id" json:"custom_field_id"`
	Value         *string `gorm:"column:value" json:"value,omitempty"`
	Audit
}

func (DocumentFieldValue) TableName() string { return "document_field_values" }

// DocumentPage is a rendered page image of a document.
type DocumentPage struct {
	ID            string  `gorm:"column:id;primaryKey" json:"id"`
	DocumentID    string  `gorm:"column:document_id" json:"document_id"`
	PageNumber    int     `gorm:"column:page_number" json:"page_number"`
	ImagePath     string  `gorm:"column:image_path" json:"image_path"`
	ThumbnailPath *string `gorm:"column:thumbnail_path" json:"thumbnail_path,omitempty"`
	Width         int     `gorm:"column:width" json:"width"`
	Height        int     `gorm:"column:height" json:"height"`
	Audit
}

func (DocumentPage) TableName() string { return "document_pages" }
