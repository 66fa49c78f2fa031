package assessments

import (
	"math"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/exceptions"
)

type riskEntry struct {
	RiskLevel      string
	PrimarySuspect string
	Recommendation string
}

var riskTable = map[string]riskEntry{
	constvars.ClassifierLabelHospitalUrgency: {
		RiskLevel:      constvars.RiskLevelHigh,
		PrimarySuspect: constvars.PrimarySuspectHospitalUrgency,
		Recommendation: constvars.RecommendationHospitalUrgency,
	},
	constvars.ClassifierLabelPriorityConsult: {
		RiskLevel:      constvars.RiskLevelModerate,
		PrimarySuspect: constvars.PrimarySuspectPriorityConsult,
		Recommendation: constvars.RecommendationPriorityConsult,
	},
	constvars.ClassifierLabelHomeCare: {
		RiskLevel:      constvars.RiskLevelLow,
		PrimarySuspect: constvars.PrimarySuspectHomeCare,
		Recommendation: constvars.RecommendationHomeCare,
	},
}

// BuildDiagnosisRequest merges profile and symptoms into the classifier's flat body.
func BuildDiagnosisRequest(profile models.NeonatalProfile, symptoms models.SymptomSet) *requests.Diagnosis {
	return &requests.Diagnosis{
		RiesgoMaternoInfeccioso: profile.MaternalInfectiousRisk,
		EdadGestacional:         profile.GestationalAge,
		HistIctericiaHnos:       profile.SiblingJaundiceHistory,
		TipoAlimentacion:        profile.FeedingType,
		EdadNeonatal:            profile.NeonatalAge,
		Primiparidad:            profile.BirthOrder,
		Sexo:                    profile.Sex,
		UsoAntibioticos:         symptoms.AntibioticUse,
		Tos:                     symptoms.Cough,
		Temperatura:             symptoms.Temperature,
		EsfuerzoRespiratorio:    symptoms.RespiratoryEffort,
		ApetitoSuccion:          symptoms.Appetite,
		FrecuenciaPanales:       symptoms.WetDiaperFrequency,
		ColoracionPiel:          symptoms.SkinColor,
		CaracteristicasVomito:   symptoms.VomitCharacteristics,
		NivelConsciencia:        symptoms.ConsciousnessLevel,
	}
}

// MapClassifierResponse looks the label up in the fixed risk table. Labels
// outside the table are an error.
func MapClassifierResponse(label string, confidence float64) (models.RiskResult, error) {
	entry, ok := riskTable[label]
	if !ok {
		return models.RiskResult{}, exceptions.ErrClassifierUnknownLabel(label)
	}

	return models.RiskResult{
		RiskLevel:      entry.RiskLevel,
		Probability:    int(math.Round(confidence * 100)),
		PrimarySuspect: entry.PrimarySuspect,
		Recommendation: entry.Recommendation,
	}, nil
}
