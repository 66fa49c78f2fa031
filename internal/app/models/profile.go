package models

import (
	"neonatal-triage-service/internal/pkg/constvars"
	"time"
)

// NeonatalProfile holds the static attributes captured once per subject.
// JSON and BSON names are the classifier's field names.
type NeonatalProfile struct {
	MaternalInfectiousRisk string `json:"riesgoMaternoInfeccioso" bson:"riesgoMaternoInfeccioso" validate:"required,oneof=Alto Bajo"`
	GestationalAge         string `json:"edadGestacional" bson:"edadGestacional" validate:"required,oneof=Prematuro aTermino"`
	SiblingJaundiceHistory string `json:"histIctericiaHnos" bson:"histIctericiaHnos" validate:"required,oneof=Si No"`
	FeedingType            string `json:"tipoAlimentacion" bson:"tipoAlimentacion" validate:"required,oneof=Pecho Formula"`
	NeonatalAge            string `json:"edadNeonatal" bson:"edadNeonatal" validate:"required,oneof=1_7Dias 2_4Semanas"`
	BirthOrder             string `json:"Primiparidad" bson:"Primiparidad" validate:"required,oneof=primerHijo Hnos"`
	Sex                    string `json:"Sexo" bson:"Sexo" validate:"required,oneof=M F"`
}

// ProfileDocument is the durable-store shape of a profile, keyed by subject id.
type ProfileDocument struct {
	NeonatalProfile `bson:",inline"`

	SubjectID string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Fields returns the profile as a flat map keyed by classifier field name.
func (p NeonatalProfile) Fields() map[string]string {
	return map[string]string{
		constvars.FieldMaternalInfectiousRisk: p.MaternalInfectiousRisk,
		constvars.FieldGestationalAge:         p.GestationalAge,
		constvars.FieldSiblingJaundiceHistory: p.SiblingJaundiceHistory,
		constvars.FieldFeedingType:            p.FeedingType,
		constvars.FieldNeonatalAge:            p.NeonatalAge,
		constvars.FieldBirthOrder:             p.BirthOrder,
		constvars.FieldSex:                    p.Sex,
	}
}
