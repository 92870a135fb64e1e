package model

// Record is one persisted JSON document in the records table. Documents are
// read and written whole; there is no partial update at this level.
type Record struct {
	RecordKey string `gorm:"column:record_key;primaryKey;size:191"`
	Value     string `gorm:"type:longtext"`
}
