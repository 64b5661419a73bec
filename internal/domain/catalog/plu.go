package catalog

import "strings"

// MatchesPLU compara el PLU de un gusto contra un token escaneado/tipeado.
// La comparación es por valor numérico: se extraen los dígitos de ambos lados
// y se ignoran los ceros a la izquierda ("000001" matchea "1" y "0001").
// Un lado sin dígitos nunca matchea.
func MatchesPLU(flavorPLU *string, token string) bool {
	if flavorPLU == nil {
		return false
	}
	a := numericKey(*flavorPLU)
	b := numericKey(token)
	return a != "" && b != "" && a == b
}

// numericKey deja solo los dígitos y quita ceros a la izquierda; "" si no hay
// dígitos o el valor es cero puro ("000" -> "0").
func numericKey(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	d := strings.TrimLeft(sb.String(), "0")
	if d == "" && sb.Len() > 0 {
		return "0"
	}
	return d
}
