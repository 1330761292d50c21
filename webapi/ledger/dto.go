package ledger

// Monetary amounts cross the wire as decimal strings so nothing is ever
// round-tripped through a binary float.

// OpenAccountRequest creates a new account for the calling owner.
type OpenAccountRequest struct {
	Currency string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// MoveRequest is the shared shape of deposit and withdrawal requests.
type MoveRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Currency    string `json:"currency" validate:"omitempty,len=3,uppercase"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// TransferRequest moves funds to the account resolved from To.
type TransferRequest struct {
	To       string `json:"to" validate:"required,max=255"`
	Amount   string `json:"amount" validate:"required"`
	Fee      string `json:"fee" validate:"omitempty"`
	Currency string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// AccountResponse describes a newly opened account.
type AccountResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

// BalanceResponse reports the current balance of the primary account.
type BalanceResponse struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// EntryResponse is one transaction log entry.
type EntryResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Amount       string  `json:"amount"`
	Currency     string  `json:"currency"`
	Fee          string  `json:"fee"`
	Counterparty *string `json:"counterparty,omitempty"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
}
