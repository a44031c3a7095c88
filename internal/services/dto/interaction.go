package dto

// ToggleResponse reports the state after a like or save toggle.
type ToggleResponse struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

type SavedCasesResponse struct {
	Cases []*CaseResponse `json:"cases"`
	Total int64           `json:"total"`
}
