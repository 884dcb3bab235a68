package dto

// CatalogItemDTO is one selectable catalog entry (room category or rate plan).
type CatalogItemDTO struct {
	ID          uint   `json:"id" example:"1"`
	Code        string `json:"code" example:"deluxe"`
	Name        string `json:"name" example:"Chambre Deluxe"`
	Description string `json:"description,omitempty"`
}

// PartnerDTO is one distribution partner.
type PartnerDTO struct {
	ID      uint   `json:"id" example:"1"`
	Name    string `json:"name" example:"Booking.com"`
	Channel string `json:"channel" example:"ota"`
}

type ListCategoriesResponse struct {
	Message string           `json:"message"`
	Items   []CatalogItemDTO `json:"items"`
}

type ListPlansResponse struct {
	Message string           `json:"message"`
	Items   []CatalogItemDTO `json:"items"`
}

type ListPartnersResponse struct {
	Message string       `json:"message"`
	Items   []PartnerDTO `json:"items"`
}
