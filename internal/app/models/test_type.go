package models

const (
	FieldKindNumeric = "numeric"
	FieldKindText    = "text"
	FieldKindChoice  = "choice"
)

type FieldDefinition struct {
	Name          string   `bson:"name"`
	Label         string   `bson:"label,omitempty"`
	Kind          string   `bson:"kind"`
	Required      bool     `bson:"required"`
	Unit          string   `bson:"unit,omitempty"`
	Min           *float64 `bson:"min,omitempty"`
	Max           *float64 `bson:"max,omitempty"`
	NormalMin     *float64 `bson:"normalMin,omitempty"`
	NormalMax     *float64 `bson:"normalMax,omitempty"`
	AllowedValues []string `bson:"allowedValues,omitempty"`
}

type TestType struct {
	ID               string            `bson:"_id,omitempty"`
	Code             string            `bson:"code"`
	Name             string            `bson:"name"`
	FieldDefinitions []FieldDefinition `bson:"fieldDefinitions"`
	TimeModel        `bson:",inline"`
}
