// Package rut valida y formatea el RUT chileno (rol único tributario).
// La lógica vive aquí, independiente de cualquier formulario, para que todos
// los diálogos usen exactamente las mismas reglas.
package rut

import (
	"fmt"
	"strings"
)

// Normalize elimina puntos, guiones y espacios y deja el dígito verificador
// en mayúscula. "12.345.678-k" -> "12345678K". No valida.
func Normalize(rut string) string {
	var b strings.Builder
	for _, r := range rut {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('K')
		}
	}
	return b.String()
}

// ComputeVerifier calcula el dígito verificador (módulo 11) para el cuerpo
// numérico del RUT. Devuelve '0'-'9' o 'K'.
func ComputeVerifier(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("rut: cuerpo vacío")
	}
	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("rut: cuerpo con carácter no numérico %q", c)
		}
		sum += int(c-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch rem := 11 - sum%11; rem {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + rem), nil
	}
}

// Validate verifica que el RUT (con o sin puntos/guion) tenga un dígito
// verificador correcto según el algoritmo módulo 11.
func Validate(rut string) error {
	n := Normalize(rut)
	if len(n) < 2 {
		return fmt.Errorf("rut: se requieren cuerpo y dígito verificador, se recibió %q", rut)
	}
	body, dv := n[:len(n)-1], n[len(n)-1]
	expected, err := ComputeVerifier(body)
	if err != nil {
		return err
	}
	if dv != expected {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %c", expected, dv)
	}
	return nil
}

// Format devuelve el RUT normalizado con puntos de miles y guion:
// "123456785" -> "12.345.678-5". Entrada inválida se devuelve tal cual.
func Format(rut string) string {
	n := Normalize(rut)
	if len(n) < 2 {
		return rut
	}
	body, dv := n[:len(n)-1], n[len(n)-1]

	var parts []string
	for len(body) > 3 {
		parts = append([]string{body[len(body)-3:]}, parts...)
		body = body[:len(body)-3]
	}
	parts = append([]string{body}, parts...)
	return strings.Join(parts, ".") + "-" + string(dv)
}

// Equal compara dos RUT ignorando formato. RUT vacíos nunca son iguales.
func Equal(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}
