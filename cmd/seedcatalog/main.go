// seedcatalog siembra el catálogo de gustos en la base.
//
// Uso: go run ./cmd/seedcatalog [ruta/gustos.csv]
// Sin argumento siembra el catálogo por defecto de la heladería. El CSV
// esperado tiene columnas nombre;plu;precio_por_kg (separador coma o punto
// y coma, encabezado opcional) y puede venir en ISO-8859-1, como exportan
// las planillas viejas de la balanza.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appcatalog "github.com/heladeria/balanza-api/internal/application/catalog"
	"github.com/heladeria/balanza-api/internal/infrastructure/postgres"
	"github.com/heladeria/balanza-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	entries := appcatalog.DefaultCatalog()
	if len(os.Args) > 1 {
		entries, err = readCatalogCSV(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	uc := appcatalog.New(postgres.NewFlavorRepository(pool))
	if err := uc.Seed(ctx, entries); err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catálogo sembrado: %d gustos\n", len(entries))
}

func readCatalogCSV(path string) ([]appcatalog.SeedEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		raw, err = io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("recodificar ISO-8859-1: %w", err)
		}
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	if bytes.ContainsRune(bytes.SplitN(raw, []byte("\n"), 2)[0], ';') {
		r.Comma = ';'
	}

	var entries []appcatalog.SeedEntry
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" || strings.EqualFold(name, "nombre") || strings.EqualFold(name, "name") {
			continue
		}
		e := appcatalog.SeedEntry{SortOrder: len(entries) + 1, Name: name}
		if len(rec) > 1 {
			e.PLU = strings.TrimSpace(rec[1])
		}
		if len(rec) > 2 {
			if s := strings.TrimSpace(rec[2]); s != "" {
				p, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
				if err != nil {
					return nil, fmt.Errorf("precio inválido %q para %q", s, name)
				}
				e.PricePerKg = &p
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
