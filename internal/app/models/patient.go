package models

type Patient struct {
	ID        string `bson:"_id,omitempty"`
	Name      string `bson:"name"`
	ProjectID string `bson:"projectId"`
	TimeModel `bson:",inline"`
}

type ProjectMember struct {
	ID         string `bson:"_id,omitempty"`
	ProjectID  string `bson:"projectId"`
	OperatorID string `bson:"operatorId"`
}
