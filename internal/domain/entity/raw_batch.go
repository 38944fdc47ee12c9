package entity

import (
	"time"
)

// Ingestion run status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// RawBatch is one provider response handed over by the fetch layer
type RawBatch struct {
	BatchID    string                 `json:"batch_id" bson:"batchId"`
	Provider   string                 `json:"provider" bson:"provider"`
	SearchKey  string                 `json:"search_key" bson:"searchKey"`
	ReceivedAt time.Time              `json:"received_at" bson:"receivedAt"`
	Payload    map[string]interface{} `json:"payload" bson:"payload"`
}

// IngestionRun tracks what happened to one RawBatch
type IngestionRun struct {
	BatchID          string       `bson:"batchId"`
	Provider         string       `bson:"provider"`
	SearchKey        string       `bson:"searchKey"`
	ProcessStatus    string       `bson:"processStatus"`
	ProcessStartedAt time.Time    `bson:"processStartedAt"`
	ProcessedAt      time.Time    `bson:"processedAt"`
	ErrorDetail      string       `bson:"errorDetail"`
	Counts           RunCounts    `bson:"counts"`
	SkipReasons      []SkipReason `bson:"skipReasons"`
}

type RunCounts struct {
	RawFlights int `bson:"rawFlights"`
	Converted  int `bson:"converted"`
	Skipped    int `bson:"skipped"`
	Dropped    int `bson:"dropped"`
	Stored     int `bson:"stored"`
}

// SkipReason explains why one raw flight produced no record
type SkipReason struct {
	Index   int    `json:"index" bson:"index"`
	Reason  string `json:"reason" bson:"reason"`
	Snippet string `json:"snippet" bson:"snippet"`
}
