package entity

import "time"

// IngestedDocument is the append-only archive entry for one piece of ingested
// content. ContentHash is the SHA-256 of the source text and acts as the
// dedup key: identical content is inserted once and silently ignored after.
type IngestedDocument struct {
	ID            string                 `json:"id" bson:"_id,omitempty"`
	Filename      string                 `json:"filename,omitempty" bson:"filename,omitempty"`
	FileType      string                 `json:"file_type,omitempty" bson:"fileType,omitempty"`
	SourceType    string                 `json:"source_type" bson:"sourceType"`
	ContentHash   string                 `json:"content_hash" bson:"contentHash"`
	ExtractedData map[string]interface{} `json:"extracted_data" bson:"extractedData"`
	Notes         string                 `json:"notes,omitempty" bson:"notes,omitempty"`
	ProcessedAt   time.Time              `json:"processed_at" bson:"processedAt"`
}
