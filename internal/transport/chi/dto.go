package chi

// docResponse is the wire shape of a catalog record. Optional fields are omitted when absent.
type docResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	ProductFamily string   `json:"product_family"`
	PDFURL        string   `json:"pdf_url"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Order         *int     `json:"order,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
