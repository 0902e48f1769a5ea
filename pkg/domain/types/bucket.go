package types

// Bucket is the logical object storage area for uploaded files
type Bucket string

const (
	BucketEvidence  Bucket = "evidence"
	BucketDocuments Bucket = "documents"
	BucketTrainings Bucket = "trainings"
	BucketIncidents Bucket = "incidents"
)

func AllBuckets() []Bucket {
	return []Bucket{BucketEvidence, BucketDocuments, BucketTrainings, BucketIncidents}
}

func (b Bucket) IsValid() bool {
	switch b {
	case BucketEvidence, BucketDocuments, BucketTrainings, BucketIncidents:
		return true
	default:
		return false
	}
}

func (b Bucket) String() string {
	return string(b)
}
