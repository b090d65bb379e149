package api

// AnalysisResult is the transport form of a completed media analysis.
type AnalysisResult struct {
	Type       string             `json:"type"`
	FilePath   string             `json:"file_path"`
	Emotions   map[string]float64 `json:"emotions"`
	Diagnosis  string             `json:"diagnosis"`
	Confidence float64            `json:"confidence"`
}

// UploadResponse is returned by the image and video analysis endpoints.
type UploadResponse struct {
	Success        bool            `json:"success"`
	FileID         string          `json:"file_id"`
	AnalysisResult *AnalysisResult `json:"analysis_result,omitempty"`
	Advice         string          `json:"advice,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// DiagnoseRequest carries free text for the text-diagnosis endpoint.
type DiagnoseRequest struct {
	Text string `json:"text"`
}

// Remedies bundles an empathetic intro with actionable suggestions.
type Remedies struct {
	Intro       string   `json:"intro"`
	Suggestions []string `json:"suggestions"`
}

// DiagnoseResponse combines a text diagnosis with personalized remedies.
type DiagnoseResponse struct {
	Diagnosis  string   `json:"diagnosis"`
	Confidence float64  `json:"confidence"`
	Remedies   Remedies `json:"remedies"`
}

// ChatRequest carries a single conversational message.
type ChatRequest struct {
	Text string `json:"text"`
}

// ChatResponse returns the generated reply. Fallback is set when the reply
// came from the rule-based responder rather than a generation model.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback,omitempty"`
}

// DependencyStatus captures availability of an external tool or artifact.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	Analyzer     string             `json:"analyzer"`
	Classifier   string             `json:"classifier"`
	Generator    string             `json:"generator"`
	TextModel    bool               `json:"text_model"`
	HistoryPath  string             `json:"history_path"`
	LockFilePath string             `json:"lock_file_path"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// HistoryEntry is one recorded analysis in a transport-friendly format.
type HistoryEntry struct {
	ID         int64   `json:"id"`
	Kind       string  `json:"kind"`
	Source     string  `json:"source"`
	Diagnosis  string  `json:"diagnosis"`
	Confidence float64 `json:"confidence"`
	Backend    string  `json:"backend"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// HistoryResponse wraps a collection of history entries.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// ErrorResponse is the uniform error payload for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
