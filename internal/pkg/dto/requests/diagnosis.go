package requests

// Diagnosis is the flat body posted to the classifier. Field names are the
// classifier's own and must not be renamed.
type Diagnosis struct {
	RiesgoMaternoInfeccioso string `json:"riesgoMaternoInfeccioso"`
	EdadGestacional         string `json:"edadGestacional"`
	HistIctericiaHnos       string `json:"histIctericiaHnos"`
	TipoAlimentacion        string `json:"tipoAlimentacion"`
	EdadNeonatal            string `json:"edadNeonatal"`
	Primiparidad            string `json:"Primiparidad"`
	Sexo                    string `json:"Sexo"`
	UsoAntibioticos         string `json:"usoAntibioticos"`
	Tos                     string `json:"tos"`
	Temperatura             string `json:"temperatura"`
	EsfuerzoRespiratorio    string `json:"esfuerzoRespiratorio"`
	ApetitoSuccion          string `json:"apetitoSuccion"`
	FrecuenciaPanales       string `json:"frecuenciaPanales"`
	ColoracionPiel          string `json:"coloracionPiel"`
	CaracteristicasVomito   string `json:"caracteristicasVomito"`
	NivelConsciencia        string `json:"nivelConsciencia"`
}
