package service

type ValidateUserCommand struct {
	UserID string
}

type PaymentCommand struct {
	UserID        string
	TransactionID int64
	Currency      string
	Amount        int64
	Quantity      int64
}

type RefundCommand struct {
	UserID        string
	TransactionID int64
	Quantity      int64
	RefundCode    int64
}
