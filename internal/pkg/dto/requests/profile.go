package requests

type SaveProfile struct {
	RiesgoMaternoInfeccioso string `json:"riesgoMaternoInfeccioso" validate:"required,oneof=Alto Bajo"`
	EdadGestacional         string `json:"edadGestacional" validate:"required,oneof=Prematuro aTermino"`
	HistIctericiaHnos       string `json:"histIctericiaHnos" validate:"required,oneof=Si No"`
	TipoAlimentacion        string `json:"tipoAlimentacion" validate:"required,oneof=Pecho Formula"`
	EdadNeonatal            string `json:"edadNeonatal" validate:"required,oneof=1_7Dias 2_4Semanas"`
	Primiparidad            string `json:"Primiparidad" validate:"required,oneof=primerHijo Hnos"`
	Sexo                    string `json:"Sexo" validate:"required,oneof=M F"`
}
