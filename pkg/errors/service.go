package errors

// ServiceError is the JSON body of failed HTTP responses.
// TxHash is set when the failure happened after the transaction was broadcast,
// so the caller can still look it up on chain.
type ServiceError struct {
	Message string `json:"message"`
	TxHash  string `json:"txHash,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}
