package billing

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// OpenStayRequest opens the bill of a freshly checked-in stay.
type OpenStayRequest struct {
	StayID        uint `validate:"required"`
	Advance       decimal.Decimal
	AdvanceMethod string `validate:"omitempty,payment_method"`
}

type AddChargeRequest struct {
	BillID      uint     `validate:"required"`
	Type        ItemType `validate:"required,oneof=ROOM FOOD SERVICE OTHER"`
	Description string   `validate:"required"`
	Quantity    int      `validate:"gt=0"`
	UnitPrice   decimal.Decimal
	RoomID      *uint
	FoodID      *uint
	ServiceID   *uint
}

type CloseStayRequest struct {
	StayID uint `validate:"required"`
	// Now defaults to the engine clock when zero.
	Now time.Time
}

type RecordPaymentRequest struct {
	BillID uint `validate:"required"`
	Amount decimal.Decimal
	Method string `validate:"required,payment_method"`
	Note   string `validate:"max=500"`
}

var paymentMethods = map[string]struct{}{
	MethodCash:         {},
	MethodCard:         {},
	MethodBankTransfer: {},
	MethodOnline:       {},
	MethodOther:        {},
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	_, ok := paymentMethods[strings.ToUpper(strings.TrimSpace(m))]
	return ok
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return ValidPaymentMethod(fl.Field().String())
	})
	return v
}

func validateRequest(v *validator.Validate, op string, req any) error {
	if err := v.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return Validation(op, "field %s failed %q", fe.Field(), fe.Tag())
		}
		return Validation(op, "%v", err)
	}
	return nil
}
