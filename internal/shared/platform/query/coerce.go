package query

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectIDPattern valida identificadores de 24 caracteres hexadecimales.
var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ---------------- Conversores escalares ----------------

func parseString(raw string) (string, error) {
	return raw, nil
}

// ParseNumber convierte raw (con espacios recortados) a float64. NaN no se acepta.
func ParseNumber(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, NewFieldError(CodeNotANumber, "Empty string is not a valid number")
	}

	// ParseFloat admite literales hexadecimales de Go (0x1p4); aquí solo decimales.
	if unsigned := strings.TrimLeft(trimmed, "+-"); len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, NewFieldError(CodeNotANumber, fmt.Sprintf("'%s' is not a valid number: hexadecimal notation not allowed", raw)).
			WithParam("value", raw)
	}

	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, NewFieldError(CodeNotANumber, fmt.Sprintf("'%s' is not a valid number: %v", raw, err)).
			WithParam("value", raw)
	}
	if math.IsNaN(num) {
		return 0, NewFieldError(CodeNotANumber, "Value is not a number (NaN)").WithParam("value", raw)
	}
	return num, nil
}

// ParseBool acepta true/t/yes/y/1 y false/f/no/n/0 sin distinguir mayúsculas.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	default:
		return false, NewFieldError(CodeInvalidBoolean, fmt.Sprintf("'%s' is not a valid boolean", raw)).
			WithParam("value", raw)
	}
}

// ParseObjectID exige exactamente 24 caracteres hexadecimales.
func ParseObjectID(raw string) (primitive.ObjectID, error) {
	if !objectIDPattern.MatchString(raw) {
		return primitive.NilObjectID, NewFieldError(
			CodeInvalidObjectID,
			fmt.Sprintf("'%s' is not a valid ObjectId: must be a 24-character hexadecimal string", raw),
		).WithParam("value", raw)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, NewFieldError(
			CodeInvalidObjectID, fmt.Sprintf("'%s' is not a valid ObjectId: %v", raw, err),
		).WithParam("value", raw)
	}
	return id, nil
}

// ParseDateTime exige RFC 3339 (con zona horaria).
func ParseDateTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, NewFieldError(
			CodeInvalidDatetime, fmt.Sprintf("'%s' is not a valid datetime: %v", raw, err),
		).WithParam("value", raw)
	}
	return t, nil
}

func parseTrimmedDateTime(raw string) (time.Time, error) {
	return ParseDateTime(strings.TrimSpace(raw))
}

// ---------------- Conversores de listas ----------------

// parseList separa por ',' y convierte cada elemento; el primer fallo aborta.
func parseList[T any](raw string, parse func(string) (T, error)) ([]T, error) {
	parts := strings.Split(raw, ",")
	result := make([]T, 0, len(parts))
	for _, part := range parts {
		val, err := parse(part)
		if err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, nil
}
