package requests

type SetWizardField struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}
