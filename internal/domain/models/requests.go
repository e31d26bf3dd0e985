package models

// Request shapes bound and validated at the API edge. Core use cases take
// plain arguments; these exist only for transport.

type PriceRequest struct {
	Symbol string `param:"symbol" validate:"required,max=10,alphanum"`
	Period string `query:"period" default:"1mo" validate:"oneof=1d 1wk 1mo 3mo 6mo 1y"`
}

type BatchPricesRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=20,dive,required,max=10"`
}

type SymbolSearchRequest struct {
	Query string `query:"q" validate:"required,min=1,max=50"`
	Limit int    `query:"limit" default:"10" validate:"gte=1,lte=50"`
}

type SignalRequest struct {
	Symbol string `param:"symbol" validate:"required,max=10,alphanum"`
	Period string `query:"period" default:"1mo" validate:"oneof=1d 1wk 1mo 3mo 6mo 1y"`
}

type OverviewRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=20,dive,required,max=10"`
}

type MetadataRequest struct {
	Symbol string `param:"symbol" validate:"required,max=10,alphanum"`
}
