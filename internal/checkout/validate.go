package checkout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/biblion/internal/models"
)

const DefaultCountry = "United States"

var ErrInvalidDetails = errors.New("invalid checkout details")

var (
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	})
	return v
}

type Payment struct {
	CardNumber string `json:"cardNumber" validate:"required,number,min=13,max=19"`
	CardName   string `json:"cardName"   validate:"required,max=100"`
	Expiry     string `json:"expiry"     validate:"required,cardexpiry"`
	CVV        string `json:"cvv"        validate:"required,number,min=3,max=4"`
}

func (p *Payment) normalize() {
	p.CardNumber = strings.NewReplacer(" ", "", "-", "").Replace(p.CardNumber)
	p.CardName = strings.TrimSpace(p.CardName)
	p.Expiry = strings.TrimSpace(p.Expiry)
	p.CVV = strings.TrimSpace(p.CVV)
}

func (p Payment) Last4() string {
	if len(p.CardNumber) < 4 {
		return p.CardNumber
	}
	return p.CardNumber[len(p.CardNumber)-4:]
}

func ValidatePayment(p *Payment) error {
	p.normalize()
	if err := validate.Struct(p); err != nil {
		return errors.Join(ErrInvalidDetails, err)
	}
	return nil
}

func ValidateShipping(a *models.ShippingAddress) error {
	a.Email = strings.TrimSpace(a.Email)
	if strings.TrimSpace(a.Country) == "" {
		a.Country = DefaultCountry
	}
	if err := validate.Struct(a); err != nil {
		return errors.Join(ErrInvalidDetails, err)
	}
	return nil
}
