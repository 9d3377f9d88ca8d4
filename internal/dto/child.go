package dto

// ChildRequest creates or renames a child of the calling parent.
type ChildRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Level    string `json:"level" validate:"required,oneof=college lycee"`
}
