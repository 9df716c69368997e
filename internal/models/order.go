package models

type PaymentMethod string

const (
	PaymentMethodTON          PaymentMethod = "ton"
	PaymentMethodUSDT         PaymentMethod = "usdt"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentMethods lists the selectable methods in display order. The first
// entry is the default selection.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodTON,
		PaymentMethodUSDT,
		PaymentMethodBankTransfer,
	}
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodTON, PaymentMethodUSDT, PaymentMethodBankTransfer:
		return true
	default:
		return false
	}
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodTON:
		return "TON"
	case PaymentMethodUSDT:
		return "USDT (TRC20)"
	case PaymentMethodBankTransfer:
		return "Bank transfer"
	default:
		return string(m)
	}
}

type BankDetails struct {
	BankName      string `json:"bank_name"`
	CardNumber    string `json:"card_number"`
	AccountHolder string `json:"account_holder"`
}

// OrderResult is the decoded outcome of order creation. Exactly one of
// AutomatedPayment or ManualPayment comes back from the backend; downstream
// code switches on the concrete type instead of probing optional fields.
type OrderResult interface {
	orderResult()
}

// AutomatedPayment means the order is paid through an external checkout
// page the client must open.
type AutomatedPayment struct {
	OrderID    int
	PaymentURL string
}

// ManualPayment means the user transfers funds out-of-band and an
// administrator confirms the order later.
type ManualPayment struct {
	OrderID int
	Bank    BankDetails
}

func (AutomatedPayment) orderResult() {}
func (ManualPayment) orderResult()    {}
