package responses

// Diagnosis is the classifier's reply. Both fields are pointers so that an
// absent key can be told apart from a zero value.
type Diagnosis struct {
	RecomendacionPrincipal *string  `json:"recomendacion_principal"`
	Confianza              *float64 `json:"confianza"`
}
