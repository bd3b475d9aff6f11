package dto

// Upload buckets.
const (
	BucketHeadshots = "headshots"
	BucketResumes   = "resumes"
	BucketSides     = "sides"
	BucketReceipts  = "receipts"
	BucketSelftapes = "selftapes"
)

// Entities an upload may be attached to.
const (
	EntityActor    = "actor"
	EntityAudition = "audition"
	EntityExpense  = "expense"
)

type UploadRequest struct {
	Bucket     string `form:"bucket" validate:"required,oneof=headshots resumes sides receipts selftapes"`
	EntityType string `form:"entity_type" validate:"omitempty,oneof=actor audition expense"`
	EntityID   string `form:"entity_id" validate:"required_with=EntityType,max=36"`
}
