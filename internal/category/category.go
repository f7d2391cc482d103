package category

// UnknownName is shown when a product points at a category that is not loaded.
const UnknownName = "Unknown category"

type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
