package models

import "time"

// AnalyzeRequest asks for analysis of the image at a URL. BaseKey is the
// seed for smart-key derivation; when zero the service picks a random one.
type AnalyzeRequest struct {
	URL     string `json:"url" binding:"required,url"`
	BaseKey int    `json:"base_key,omitempty"`
}

// AnalyzeResponse carries the analysis plus the advisory recommendation.
// Every field is an independently formattable value so callers can build
// their own reports from it.
type AnalyzeResponse struct {
	ImageURL          string         `json:"image_url"`
	Analysis          AnalysisResult `json:"analysis"`
	RecommendedMethod Method         `json:"recommended_method"`
	BaseKey           int            `json:"base_key"`
	SmartKey          int            `json:"smart_key"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
}

// TransformRequest asks for a forward or backward transform of the image
// at a URL.
type TransformRequest struct {
	URL    string `json:"url" binding:"required,url"`
	Key    int    `json:"key" binding:"required"`
	Method string `json:"method" binding:"required"`
}

// TransformResponse is the outcome of a single transform.
type TransformResponse struct {
	RecordID          string  `json:"record_id"`
	ImageURL          string  `json:"image_url"`
	Method            Method  `json:"method"`
	Key               int     `json:"key"`
	KeyStrength       int     `json:"key_strength"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	Channels          int     `json:"channels"`
	ResultPNG         string  `json:"result_png"` // base64-encoded PNG
	OutputBlob        string  `json:"output_blob,omitempty"`
	ProcessingTimeSec float64 `json:"processing_time_sec"`
}

// BatchRequest fans the same key/method out over several images.
type BatchRequest struct {
	URLs    []string `json:"urls" binding:"required,min=1"`
	Key     int      `json:"key" binding:"required"`
	Method  string   `json:"method" binding:"required"`
	Decrypt bool     `json:"decrypt,omitempty"`
}

// BatchItemResult is the per-image outcome of a batch run. Batch items do
// not enter the operation history, so there is no record ID here.
type BatchItemResult struct {
	URL        string `json:"url"`
	OutputBlob string `json:"output_blob,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BatchResponse summarizes a batch run.
type BatchResponse struct {
	Total             int               `json:"total"`
	Succeeded         int               `json:"succeeded"`
	Failed            int               `json:"failed"`
	Items             []BatchItemResult `json:"items"`
	ProcessingTimeSec float64           `json:"processing_time_sec"`
}

// HistoryEntry is the wire form of an operation record. The pixel snapshot
// stays server-side; only the thumbnail travels.
type HistoryEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Label        string    `json:"label"`
	Method       Method    `json:"method"`
	Key          int       `json:"key"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Channels     int       `json:"channels"`
	ThumbnailPNG string    `json:"thumbnail_png,omitempty"` // base64-encoded PNG
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
