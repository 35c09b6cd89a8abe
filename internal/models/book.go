package models

// Book is a catalog entry. JSON names follow the storefront client.
type Book struct {
	ID            uint     `gorm:"primaryKey"          json:"id"`
	Title         string   `gorm:"not null;index"      json:"title"`
	Author        string   `gorm:"not null;index"      json:"author"`
	Price         float64  `gorm:"not null"            json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Rating        float64  `gorm:"not null;default:0"  json:"rating"`
	Reviews       int      `gorm:"not null;default:0"  json:"reviews"`
	Cover         string   `json:"cover"`
	Category      string   `gorm:"not null;index"      json:"category"`
	Badge         *string  `json:"badge,omitempty"`
	Description   string   `json:"description"`
	FileURL       *string  `json:"fileUrl,omitempty"`
	FileType      *string  `gorm:"size:8"              json:"fileType,omitempty"`
}

const (
	FileTypeEPUB = "epub"
	FileTypePDF  = "pdf"
)

func (b Book) HasFile() bool {
	return b.FileURL != nil && *b.FileURL != ""
}

// DocumentType defaults to epub when the file type is missing.
func (b Book) DocumentType() string {
	if b.FileType != nil && *b.FileType == FileTypePDF {
		return FileTypePDF
	}
	return FileTypeEPUB
}
