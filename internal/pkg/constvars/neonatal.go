package constvars

// Profile field names, passed verbatim to the classifier.
const (
	FieldMaternalInfectiousRisk = "riesgoMaternoInfeccioso"
	FieldGestationalAge         = "edadGestacional"
	FieldSiblingJaundiceHistory = "histIctericiaHnos"
	FieldFeedingType            = "tipoAlimentacion"
	FieldNeonatalAge            = "edadNeonatal"
	FieldBirthOrder             = "Primiparidad"
	FieldSex                    = "Sexo"
)

// Symptom field names, passed verbatim to the classifier.
const (
	FieldAntibioticUse        = "usoAntibioticos"
	FieldCough                = "tos"
	FieldTemperature          = "temperatura"
	FieldRespiratoryEffort    = "esfuerzoRespiratorio"
	FieldAppetite             = "apetitoSuccion"
	FieldWetDiaperFrequency   = "frecuenciaPanales"
	FieldSkinColor            = "coloracionPiel"
	FieldVomitCharacteristics = "caracteristicasVomito"
	FieldConsciousnessLevel   = "nivelConsciencia"
)

const (
	ClassifierLabelHospitalUrgency = "Urgencia_Hospital"
	ClassifierLabelPriorityConsult = "Consulta_Prioritaria"
	ClassifierLabelHomeCare        = "Cuidados_Casa"
)

const (
	RiskLevelLow      = "Bajo"
	RiskLevelModerate = "Moderado"
	RiskLevelHigh     = "Alto"
	RiskLevelError    = "Error"
)

const (
	WizardStateStep      = "step"
	WizardStateAnalyzing = "analyzing"
	WizardStateResult    = "result"
)

const (
	MongoCollectionProfiles    = "perfiles"
	MongoCollectionAssessments = "evaluaciones"
)

const (
	RedisKeyProfileCachePrefix = "neonatalProfile:"
	RedisKeyWizardPrefix       = "wizard:"
	RedisKeyWizardLockPrefix   = "lock:wizard:"
	RedisKeyQuotaPrefix        = "quota:"
	QuotaGroupSubmit           = "SUBMIT"
)

// Fixed texts for each risk level.
const (
	PrimarySuspectHospitalUrgency = "Signos de alarma que requieren atención hospitalaria"
	RecommendationHospitalUrgency = "Acuda de inmediato al servicio de urgencias más cercano."
	PrimarySuspectPriorityConsult = "Cuadro que requiere valoración médica prioritaria"
	RecommendationPriorityConsult = "Solicite una consulta pediátrica en las próximas 24 horas y vigile la evolución."
	PrimarySuspectHomeCare        = "Sin signos de alarma"
	RecommendationHomeCare        = "Continúe los cuidados en casa y vigile la aparición de nuevos síntomas."
	PrimarySuspectError           = "Error en el análisis"
	RecommendationError           = "No fue posible completar el análisis. Inicie una nueva evaluación o consulte a su pediatra."
)

// Wizard step titles.
const (
	WizardStepTitleBreathing  = "Respiración y temperatura"
	WizardStepTitleFeeding    = "Alimentación y eliminación"
	WizardStepTitleAppearance = "Apariencia y comportamiento"
)
