package dto

// ObservationsResponse はFRED /fred/series/observations のレスポンスです。
type ObservationsResponse struct {
	Observations []Observation `json:"observations"`
}

// Observation は1観測値です。欠損値はvalueが "." になります。
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}
