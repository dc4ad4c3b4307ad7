// Package gtin valida códigos GTIN-8, GTIN-12 (UPC-A), GTIN-13 (EAN) y GTIN-14.
package gtin

import (
	"fmt"
	"strings"
)

// Normalize quita espacios y guiones. No completa ceros a la izquierda.
func Normalize(code string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, code)
}

// Validate verifica longitud, que solo haya dígitos y el dígito de control módulo 10.
func Validate(code string) error {
	digits := Normalize(code)
	switch len(digits) {
	case 8, 12, 13, 14:
	default:
		return fmt.Errorf("gtin: longitud inválida %d en %q (se esperan 8, 12, 13 o 14 dígitos)", len(digits), code)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("gtin: %q contiene caracteres no numéricos", code)
		}
	}
	expected := checkDigit(digits[:len(digits)-1])
	if got := digits[len(digits)-1]; got != expected {
		return fmt.Errorf("gtin: dígito de control inválido en %q: esperado %c, recibido %c", code, expected, got)
	}
	return nil
}

// ComputeCheckDigit calcula el dígito de control para el cuerpo del código (sin el dígito final).
func ComputeCheckDigit(body string) (byte, error) {
	digits := Normalize(body)
	if digits == "" {
		return 0, fmt.Errorf("gtin: cuerpo vacío")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("gtin: %q contiene caracteres no numéricos", body)
		}
	}
	return checkDigit(digits), nil
}

// checkDigit pesos 3,1,3,1... desde el dígito más a la derecha del cuerpo.
func checkDigit(body string) byte {
	var sum int
	for i := 0; i < len(body); i++ {
		d := int(body[len(body)-1-i] - '0')
		if i%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}
	return byte('0' + (10-sum%10)%10)
}
