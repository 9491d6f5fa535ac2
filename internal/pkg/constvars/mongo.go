package constvars

const (
	MongoCollectionSpecimens       = "specimens"
	MongoCollectionWorkAssignments = "work_assignments"
	MongoCollectionAccessRecords   = "access_records"
	MongoCollectionResults         = "results"
	MongoCollectionTestTypes       = "test_types"
	MongoCollectionPatients        = "patients"
	MongoCollectionProjectMembers  = "project_members"
)
