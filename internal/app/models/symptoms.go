package models

import (
	"neonatal-triage-service/internal/pkg/constvars"
)

// SymptomSet holds one assessment session's observations. An empty value
// means the question has not been answered yet.
type SymptomSet struct {
	AntibioticUse        string `json:"usoAntibioticos" bson:"usoAntibioticos" validate:"required,oneof=Si No"`
	Cough                string `json:"tos" bson:"tos" validate:"required,oneof=Ninguna Seca Productiva"`
	Temperature          string `json:"temperatura" bson:"temperatura" validate:"required,oneof=Hipotermia Normal Fiebre"`
	RespiratoryEffort    string `json:"esfuerzoRespiratorio" bson:"esfuerzoRespiratorio" validate:"required,oneof=Normal Tiraje AleteoNasal"`
	Appetite             string `json:"apetitoSuccion" bson:"apetitoSuccion" validate:"required,oneof=Rechazo Normal Voraz"`
	WetDiaperFrequency   string `json:"frecuenciaPanales" bson:"frecuenciaPanales" validate:"required,oneof=Normal Pocos Ninguno"`
	SkinColor            string `json:"coloracionPiel" bson:"coloracionPiel" validate:"required,oneof=Normal Azulada Amarillenta"`
	VomitCharacteristics string `json:"caracteristicasVomito" bson:"caracteristicasVomito" validate:"required,oneof=Ninguno Regurgitacion Proyectil Bilioso"`
	ConsciousnessLevel   string `json:"nivelConsciencia" bson:"nivelConsciencia" validate:"required,oneof=Alerta IrritableLlanto NoResponde"`
}

// SymptomFieldNames lists every symptom field in questionnaire order.
var SymptomFieldNames = []string{
	constvars.FieldAntibioticUse,
	constvars.FieldCough,
	constvars.FieldTemperature,
	constvars.FieldRespiratoryEffort,
	constvars.FieldAppetite,
	constvars.FieldWetDiaperFrequency,
	constvars.FieldVomitCharacteristics,
	constvars.FieldSkinColor,
	constvars.FieldConsciousnessLevel,
}

// SymptomAllowedValues maps each symptom field to the answers it accepts.
var SymptomAllowedValues = map[string][]string{
	constvars.FieldAntibioticUse:        {"Si", "No"},
	constvars.FieldCough:                {"Ninguna", "Seca", "Productiva"},
	constvars.FieldTemperature:          {"Hipotermia", "Normal", "Fiebre"},
	constvars.FieldRespiratoryEffort:    {"Normal", "Tiraje", "AleteoNasal"},
	constvars.FieldAppetite:             {"Rechazo", "Normal", "Voraz"},
	constvars.FieldWetDiaperFrequency:   {"Normal", "Pocos", "Ninguno"},
	constvars.FieldSkinColor:            {"Normal", "Azulada", "Amarillenta"},
	constvars.FieldVomitCharacteristics: {"Ninguno", "Regurgitacion", "Proyectil", "Bilioso"},
	constvars.FieldConsciousnessLevel:   {"Alerta", "IrritableLlanto", "NoResponde"},
}

func (s *SymptomSet) fieldRef(name string) (*string, bool) {
	switch name {
	case constvars.FieldAntibioticUse:
		return &s.AntibioticUse, true
	case constvars.FieldCough:
		return &s.Cough, true
	case constvars.FieldTemperature:
		return &s.Temperature, true
	case constvars.FieldRespiratoryEffort:
		return &s.RespiratoryEffort, true
	case constvars.FieldAppetite:
		return &s.Appetite, true
	case constvars.FieldWetDiaperFrequency:
		return &s.WetDiaperFrequency, true
	case constvars.FieldSkinColor:
		return &s.SkinColor, true
	case constvars.FieldVomitCharacteristics:
		return &s.VomitCharacteristics, true
	case constvars.FieldConsciousnessLevel:
		return &s.ConsciousnessLevel, true
	}
	return nil, false
}

// Get returns the value of the named field; ok is false for unknown names.
func (s *SymptomSet) Get(name string) (value string, ok bool) {
	ref, ok := s.fieldRef(name)
	if !ok {
		return "", false
	}
	return *ref, true
}

// Set assigns exactly one named field; ok is false for unknown names.
func (s *SymptomSet) Set(name, value string) (ok bool) {
	ref, ok := s.fieldRef(name)
	if !ok {
		return false
	}
	*ref = value
	return true
}

// FirstMissing returns the first unanswered field in questionnaire order, or "" when complete.
func (s SymptomSet) FirstMissing() string {
	for _, name := range SymptomFieldNames {
		if value, _ := s.Get(name); value == "" {
			return name
		}
	}
	return ""
}

func (s SymptomSet) IsComplete() bool {
	return s.FirstMissing() == ""
}

// Fields returns the symptoms as a flat map keyed by classifier field name.
func (s SymptomSet) Fields() map[string]string {
	fields := make(map[string]string, len(SymptomFieldNames))
	for _, name := range SymptomFieldNames {
		fields[name], _ = s.Get(name)
	}
	return fields
}

// IsAllowedSymptomValue reports whether value is a valid answer for field.
func IsAllowedSymptomValue(field, value string) bool {
	for _, allowed := range SymptomAllowedValues[field] {
		if allowed == value {
			return true
		}
	}
	return false
}
