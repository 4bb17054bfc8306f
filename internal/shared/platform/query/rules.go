package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// Rule es una validación semántica sobre un valor ya convertido.
// Devuelve nil si el valor es válido, normalmente un *FieldError si no.
type Rule[T any] func(T) error

var validate, translator = newValidator()

func newValidator() (*validator.Validate, ut.Translator) {
	v := validator.New()
	trans, err := RegisterTranslations(v)
	if err != nil {
		panic(err)
	}
	return v, trans
}

// Cada validador necesita su propio traductor: los mensajes por defecto solo
// se pueden añadir una vez a cada uno.
func newTranslator() ut.Translator {
	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	return trans
}

// TagEmailStrict es la etiqueta de validator equivalente a EmailStrict.
const TagEmailStrict = "email_strict"

// RegisterTranslations prepara otro validador (p. ej. el de gin): añade la etiqueta
// email_strict y registra los mensajes en inglés en un traductor nuevo, que devuelve
// para usarlo con FromValidationErrors.
func RegisterTranslations(v *validator.Validate) (ut.Translator, error) {
	trans := newTranslator()
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("registering translations: %w", err)
	}
	if err := v.RegisterValidation(TagEmailStrict, func(fl validator.FieldLevel) bool {
		return EmailStrict()(fl.Field().String()) == nil
	}); err != nil {
		return nil, fmt.Errorf("registering %s: %w", TagEmailStrict, err)
	}
	return trans, nil
}

func applyRules[T any](val T, rules []Rule[T]) error {
	for _, rule := range rules {
		if err := rule(val); err != nil {
			return err
		}
	}
	return nil
}

func applyRulesToSlice[T any](vals []T, rules []Rule[T]) error {
	for _, val := range vals {
		if err := applyRules(val, rules); err != nil {
			return err
		}
	}
	return nil
}

// ---------------- Reglas disponibles ----------------

// Tag valida con una etiqueta de go-playground/validator ("min=10", "gte=-90,lte=90", "email"...).
// El código del error es el nombre de la etiqueta que falló.
func Tag[T any](tag string) Rule[T] {
	return func(val T) error {
		err := validate.Var(val, tag)
		if err == nil {
			return nil
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return NewFieldError("invalid", err.Error())
		}
		fe := verrs[0]
		return NewFieldError(fe.Tag(), strings.TrimSpace(fe.Translate(translator))).
			WithParam("param", fe.Param()).
			WithParam("value", val)
	}
}

// EmailStrict exige local@dominio con un TLD en el dominio.
func EmailStrict() Rule[string] {
	return func(email string) error {
		_, domain, found := strings.Cut(email, "@")
		if !found {
			return NewFieldError("email_invalid_format", "Email must contain '@' symbol").
				WithParam("value", email)
		}
		if !strings.Contains(domain, ".") {
			return NewFieldError("email_missing_tld", "Email domain must contain a top-level domain (e.g., '.com')").
				WithParam("value", email)
		}
		return nil
	}
}

// FromValidationErrors convierte los errores de validator de un cuerpo ya enlazado
// en un ErrorReport con el mismo formato que los filtros. trans es el traductor
// devuelto por RegisterTranslations para ese validador.
func FromValidationErrors(err error, trans ut.Translator) (ErrorReport, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	report := make(ErrorReport)
	for _, fe := range verrs {
		if fe.Tag() == TagEmailStrict {
			if ferr := emailStrictError(fe.Value()); ferr != nil {
				report.Add(fe.Field(), ferr)
				continue
			}
		}
		report.Add(fe.Field(), NewFieldError(fe.Tag(), strings.TrimSpace(fe.Translate(trans))).
			WithParam("param", fe.Param()))
	}
	return report, true
}

// emailStrictError repite EmailStrict para recuperar el código concreto
// (email_invalid_format o email_missing_tld).
func emailStrictError(value interface{}) *FieldError {
	var email string
	switch v := value.(type) {
	case string:
		email = v
	case *string:
		if v == nil {
			return nil
		}
		email = *v
	default:
		return nil
	}
	if err := EmailStrict()(email); err != nil {
		return asFieldError(err)
	}
	return nil
}
