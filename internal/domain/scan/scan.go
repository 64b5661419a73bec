// Package scan decodifica el texto crudo que emite el lector de códigos de
// barras (que se comporta como un teclado) en una lectura estructurada de
// peso + identidad, y construye el código inverso para etiquetado.
//
// Las balanzas de la heladería imprimen tickets EAN-13 con el peso embebido:
//
//	2 + PLU(6) + PESO_GRAMOS(5) + dígito verificador
//
// El prefijo 2 es la convención de "peso variable". Como heurística de último
// recurso, un código de 6+ dígitos sin checksum válido se interpreta tomando
// los últimos 4 dígitos como gramos (formato legado de la balanza vieja).
package scan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds acota los pesos aceptados por cada camino de decodificación.
// El camino legado es más estricto porque no tiene checksum que lo respalde.
type Bounds struct {
	EANMaxKg    int // exclusivo; default 50
	LegacyMaxKg int // exclusivo; default 20
}

// DefaultBounds son los límites históricos de la balanza.
var DefaultBounds = Bounds{EANMaxKg: 50, LegacyMaxKg: 20}

// Parsed es el resultado de decodificar una lectura. Función total: la
// ausencia de estructura produce campos nulos, nunca un error.
type Parsed struct {
	Raw      string           // texto original, sin recortar dígitos
	Barcode  string           // solo los dígitos del texto crudo
	WeightKg *decimal.Decimal // nil si ningún camino produjo un peso válido
	PLU      *string          // 6 dígitos; nil fuera del camino EAN con prefijo 2
}

// Parse decodifica con los límites por defecto.
func Parse(raw string) Parsed {
	return ParseWithBounds(raw, DefaultBounds)
}

// ParseWithBounds decodifica el texto crudo del escáner.
//
//  1. EAN-13 válido con prefijo 2: PLU = dígitos 2..7, gramos = dígitos 8..12;
//     el peso se acepta solo en (0, EANMaxKg) kg.
//  2. Si no hubo peso y hay 6+ dígitos: los últimos 4 son gramos, aceptados
//     solo en (0, LegacyMaxKg) kg.
//  3. Si ningún camino produce peso, WeightKg queda nil.
func ParseWithBounds(raw string, b Bounds) Parsed {
	trimmed := strings.TrimSpace(raw)
	barcode := digitsOnly(trimmed)

	out := Parsed{Raw: trimmed, Barcode: barcode}

	if IsValidEAN13(barcode) && barcode[0] == '2' {
		plu := barcode[1:7]
		out.PLU = &plu
		grams := parseGrams(barcode[7:12])
		if grams > 0 && grams < int64(b.EANMaxKg)*1000 {
			w := decimal.New(grams, -3)
			out.WeightKg = &w
		}
	}

	if out.WeightKg == nil && len(barcode) >= 6 {
		grams := parseGrams(barcode[len(barcode)-4:])
		if grams > 0 && grams < int64(b.LegacyMaxKg)*1000 {
			w := decimal.New(grams, -3)
			out.WeightKg = &w
		}
	}

	return out
}

// Encode construye el EAN-13 de peso embebido para un PLU de 6 dígitos y un
// peso en kg representable como gramos enteros en [1, 49999]. Es el inverso
// exacto de Parse para ese rango (lo usa la UI para etiquetar, no el libro).
func Encode(plu string, weightKg decimal.Decimal) (string, error) {
	if len(digitsOnly(plu)) == 0 {
		return "", fmt.Errorf("encode: PLU vacío")
	}
	pluPadded := digitsOnly(plu)
	if len(pluPadded) > 6 {
		return "", fmt.Errorf("encode: PLU de más de 6 dígitos: %q", plu)
	}
	pluPadded = strings.Repeat("0", 6-len(pluPadded)) + pluPadded

	grams := weightKg.Mul(decimal.NewFromInt(1000)).Round(0).IntPart()
	if grams < 1 || grams > 49999 {
		return "", fmt.Errorf("encode: peso fuera de rango: %s kg", weightKg)
	}

	first12 := fmt.Sprintf("2%s%05d", pluPadded, grams)
	check, _ := CheckDigit(first12)
	return fmt.Sprintf("%s%d", first12, check), nil
}

// CheckDigit calcula el dígito verificador EAN-13 de los primeros 12 dígitos:
// posiciones impares pesan 1, pares pesan 3, check = (10 - suma mod 10) mod 10.
func CheckDigit(first12 string) (int, bool) {
	if len(first12) != 12 {
		return 0, false
	}
	sum := 0
	for i := 0; i < 12; i++ {
		n := int(first12[i] - '0')
		if n < 0 || n > 9 {
			return 0, false
		}
		if i%2 == 0 {
			sum += n
		} else {
			sum += n * 3
		}
	}
	return (10 - sum%10) % 10, true
}

// IsValidEAN13 verifica largo, dígitos y checksum. El rechazo por checksum es
// absoluto: un EAN-13 inválido nunca entra al camino con peso embebido.
func IsValidEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	check, ok := CheckDigit(code[:12])
	if !ok {
		return false
	}
	last := code[12]
	return last >= '0' && last <= '9' && int(last-'0') == check
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// parseGrams interpreta un campo numérico de gramos; -1 si no es numérico.
func parseGrams(s string) int64 {
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int64(c-'0')
	}
	return n
}
