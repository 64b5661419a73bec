package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCatalog es la carta completa del local, en el orden de la vitrina.
// Se usa cuando la siembra no recibe un archivo propio.
func DefaultCatalog() []SeedEntry {
	base := decimal.NewFromInt(9500)
	names := []string{
		"Dulce de leche",
		"Dulce de leche cabsha",
		"Dulce de leche granizado",
		"Dulce tentación",
		"Chocolate",
		"Chocolate amargo",
		"Chocolate blanco",
		"Chocolate patagónico",
		"Chocolate con pasas",
		"Ferrero Rocher",
		"Marroc",
		"Pistacho",
		"Chocolate suizo",
		"Crema kínder",
		"Bananita dolca",
		"Banana Split",
		"Cereza a la crema",
		"Coco con dulce de leche",
		"Americana",
		"Crema de almendras",
		"Crema del cielo",
		"Crema oreo",
		"Crema flan",
		"Crema rusa",
		"Frutilla a la crema",
		"Granizado",
		"Mantecol",
		"Mascarpone",
		"Menta granizada",
		"Mousse de limon",
		"Kinotos al whisky",
		"Sambayón",
		"Tiramisú",
		"Tramontana",
		"Vainilla",
		"Ananá",
		"Durazno",
		"Frambuesa",
		"Frutilla al agua",
		"Frutos del bosque",
		"Limón",
		"Maracuyá",
		"Banana",
		"Chocotorta",
		"Naranja",
		"Mango",
		"Pomelo rosado",
		"Mandarina",
		"Limón tropical",
		"Melón",
		"Uva",
		"Frutilla a la reina",
		"Crema moka",
		"Crema tres leches",
		"Crema bayleis",
		"Naranja-mango",
		"Crema de arándanos",
		"Siciliano-pistacho",
		"Frambuesa italiana",
		"Chocolate dubai",
		"Caipirinha maracuyá",
		"Postre almendrado unidad",
	}

	entries := make([]SeedEntry, 0, len(names))
	for i, name := range names {
		price := base
		entries = append(entries, SeedEntry{
			SortOrder:  i + 1,
			Name:       name,
			PLU:        fmt.Sprintf("%06d", i+1),
			PricePerKg: &price,
		})
	}
	return entries
}
