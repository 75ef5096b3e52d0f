package shop

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rinsh4dd/e-com/internal/models"
)

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentEMI        PaymentMethod = "emi"
	PaymentCOD        PaymentMethod = "cod"
)

// PaymentDetails is what the payment screen collects. Only the fields of the
// chosen method are read.
type PaymentDetails struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"cardNumber,omitempty"`
	CardName   string        `json:"cardName,omitempty"`
	Expiry     string        `json:"expiryDate,omitempty"`
	CVV        string        `json:"cvv,omitempty"`
	UPIID      string        `json:"upiId,omitempty"`
	Bank       string        `json:"bank,omitempty"`
	EMIPlan    string        `json:"emiPlan,omitempty"`
}

func (p PaymentDetails) cardDigits() string {
	return strings.Join(strings.Fields(p.CardNumber), "")
}

// Validate checks the fields of the chosen method. Nothing is charged.
func (p PaymentDetails) Validate() error {
	invalid := func(field, msg string) error {
		return ErrInvalidPayment.WithDetails(map[string]string{field: msg})
	}

	switch p.Method {
	case PaymentCard:
		digits := p.cardDigits()
		if len(digits) != 16 || !allDigits(digits) {
			return invalid("cardNumber", "Please enter a valid 16-digit card number")
		}
		if strings.TrimSpace(p.CardName) == "" {
			return invalid("cardName", "Please enter cardholder name")
		}
		if !validExpiry(p.Expiry) {
			return invalid("expiryDate", "Please enter a valid expiry date (MM/YY)")
		}
		if len(p.CVV) < 3 || !allDigits(p.CVV) {
			return invalid("cvv", "Please enter a valid CVV")
		}
	case PaymentUPI:
		if !strings.Contains(p.UPIID, "@") {
			return invalid("upiId", "Please enter a valid UPI ID (e.g., name@upi)")
		}
	case PaymentNetBanking:
		if strings.TrimSpace(p.Bank) == "" {
			return invalid("bank", "Please select a bank")
		}
	case PaymentEMI:
		if strings.TrimSpace(p.EMIPlan) == "" {
			return invalid("emiPlan", "Please select an EMI plan")
		}
	case PaymentCOD:
	default:
		return invalid("method", fmt.Sprintf("Unsupported payment method %q", p.Method))
	}
	return nil
}

// Label is the text stored on the order.
func (p PaymentDetails) Label() string {
	switch p.Method {
	case PaymentCard:
		d := p.cardDigits()
		if len(d) > 4 {
			d = d[len(d)-4:]
		}
		return "VISA ****" + d
	case PaymentUPI:
		return fmt.Sprintf("UPI (%s)", p.UPIID)
	case PaymentNetBanking:
		return fmt.Sprintf("Net Banking (%s)", p.Bank)
	case PaymentEMI:
		return fmt.Sprintf("EMI (%s)", p.EMIPlan)
	case PaymentCOD:
		return "Cash on Delivery"
	}
	return string(p.Method)
}

// Status is pending for cash on delivery; every other method is taken as
// paid at checkout.
func (p PaymentDetails) Status() models.PaymentStatus {
	if p.Method == PaymentCOD {
		return models.PaymentPending
	}
	return models.PaymentCompleted
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func validExpiry(s string) bool {
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	mm, yy := s[:2], s[3:]
	if !allDigits(mm) || !allDigits(yy) {
		return false
	}
	return mm >= "01" && mm <= "12"
}
