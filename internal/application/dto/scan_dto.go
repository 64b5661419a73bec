package dto

import "github.com/shopspring/decimal"

// DecodeScanResponse resultado de decodificar una lectura cruda.
// MatchedFlavor es el gusto del catálogo cuyo PLU coincide, si hay uno.
type DecodeScanResponse struct {
	Raw           string           `json:"raw"`
	Barcode       string           `json:"barcode"`
	WeightKg      *decimal.Decimal `json:"weight_kg"`
	PLU           *string          `json:"plu"`
	MatchedFlavor *FlavorResponse  `json:"matched_flavor,omitempty"`
}

// EncodeScanRequest body para POST /api/scan/encode.
type EncodeScanRequest struct {
	PLU      string          `json:"plu"`
	WeightKg decimal.Decimal `json:"weight_kg"`
}

// EncodeScanResponse código EAN-13 construido para etiquetar.
type EncodeScanResponse struct {
	Barcode string `json:"barcode"`
}
