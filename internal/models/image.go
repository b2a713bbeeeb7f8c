package models

// Image is a value object embedded into User and Media rows rather than
// stored as its own table.
type Image struct {
	HasImage  bool   `json:"hasImage"`
	ImagePath string `json:"imagePath,omitempty"`
}
