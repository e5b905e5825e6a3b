package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Type discriminates the payment-provider notification variants.
type Type string

const (
	TypeUserValidation Type = "user_validation"
	TypePayment        Type = "payment"
	TypeRefund         Type = "refund"
)

var ErrUnknownType = errors.New("unknown notification type")

// Notification is the provider webhook payload. Exactly one variant is
// active, selected by the notification_type field; which of the optional
// sections are populated depends on Type.
type Notification struct {
	Type           Type
	User           User
	Purchase       Purchase
	Transaction    Transaction
	RefundDetails  RefundDetails
	PaymentDetails *PaymentDetails
}

type User struct {
	ID string `json:"id" validate:"required"`
}

type Purchase struct {
	VirtualCurrency VirtualCurrency `json:"virtual_currency"`
}

type VirtualCurrency struct {
	Quantity int64  `json:"quantity"`
	Currency string `json:"currency" validate:"required"`
	Amount   int64  `json:"amount"`
}

type Transaction struct {
	ID int64 `json:"id" validate:"required,min=1"`
}

type RefundDetails struct {
	Code int64 `json:"code"`
}

// PaymentDetails carries the provider's fee breakdown. The credit protocol
// never reads it; it is parsed so callers can log or forward it.
type PaymentDetails struct {
	Payment                *Money `json:"payment,omitempty"`
	Payout                 *Money `json:"payout,omitempty"`
	VAT                    *Money `json:"vat,omitempty"`
	PayoutCurrencyRate     *int64 `json:"payout_currency_rate,omitempty"`
	ProviderFee            *Money `json:"xsolla_fee,omitempty"`
	PaymentMethodFee       *Money `json:"payment_method_fee,omitempty"`
	RepatriationCommission *Money `json:"repatriation_commission,omitempty"`
}

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var head struct {
		Type Type `json:"notification_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case TypeUserValidation:
		var body struct {
			User User `json:"user"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*n = Notification{Type: head.Type, User: body.User}

	case TypePayment:
		var body struct {
			Purchase       Purchase        `json:"purchase"`
			User           User            `json:"user"`
			Transaction    Transaction     `json:"transaction"`
			PaymentDetails *PaymentDetails `json:"payment_details"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*n = Notification{
			Type:           head.Type,
			User:           body.User,
			Purchase:       body.Purchase,
			Transaction:    body.Transaction,
			PaymentDetails: body.PaymentDetails,
		}

	case TypeRefund:
		var body struct {
			Purchase       Purchase        `json:"purchase"`
			User           User            `json:"user"`
			Transaction    Transaction     `json:"transaction"`
			RefundDetails  RefundDetails   `json:"refund_details"`
			PaymentDetails *PaymentDetails `json:"payment_details"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*n = Notification{
			Type:           head.Type,
			User:           body.User,
			Purchase:       body.Purchase,
			Transaction:    body.Transaction,
			RefundDetails:  body.RefundDetails,
			PaymentDetails: body.PaymentDetails,
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, string(head.Type))
	}

	return nil
}
