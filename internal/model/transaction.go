package model

// Call is a single contract invocation submitted through the relay.
type Call struct {
	ContractAddress string   `json:"contractAddress"`
	Entrypoint      string   `json:"entrypoint"`
	Calldata        []string `json:"calldata"`
}

// TxStatus is the executor's externally visible state.
type TxStatus string

const (
	TxStatusIdle       TxStatus = "idle"
	TxStatusSubmitting TxStatus = "submitting"
	TxStatusConfirming TxStatus = "confirming"
	TxStatusConfirmed  TxStatus = "confirmed"
	TxStatusReverted   TxStatus = "reverted"
	// TxStatusError is reserved for failures before a transaction hash exists.
	TxStatusError TxStatus = "error"
)

// TransactionResult is the terminal outcome of a submitted on-chain call.
type TransactionResult struct {
	TxHash       string   `json:"txHash"`
	Status       TxStatus `json:"status"` // confirmed | reverted
	RevertReason string   `json:"revertReason,omitempty"`
}
