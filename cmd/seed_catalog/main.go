// seed_catalog genera el script SQL que carga el catálogo de productos y el stock inicial
// por bodega a partir de un XML de catálogo (ISO-8859-1 o UTF-8).
//
// Uso: go run ./cmd/seed_catalog [ruta/Catalogo.xml] [salida.sql]
// Por defecto lee Catalogo.xml del directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
//
// Formato esperado:
//
//	<catalogo>
//	  <producto gtin="4006381333931" nombre="Cemento 50kg" pesoGramos="50000">
//	    <descripcion>Bulto gris</descripcion>
//	    <stock bodega="1" cantidad="120"/>
//	  </producto>
//	</catalogo>
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Despachos-api/pkg/gtin"
)

type stockEntry struct {
	warehouseID int64
	quantity    int
}

type catalogItem struct {
	gtin        string
	name        string
	description string
	weightGrams decimal.Decimal
	stock       []stockEntry
}

func main() {
	xmlPath := "Catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	items, rejected, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}
	for _, r := range rejected {
		fmt.Fprintf(os.Stderr, "omitido: %s\n", r)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d omitidos\n", outPath, len(items), len(rejected))
}

// parseCatalog lee el XML y devuelve los productos válidos ordenados por GTIN.
// Los productos con GTIN inválido, repetido o peso negativo se reportan en rejected.
func parseCatalog(r io.Reader) (items []catalogItem, rejected []string, err error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, nil, fmt.Errorf("decodificar XML: %w", err)
	}

	seen := make(map[string]bool)
	for _, el := range doc.FindElements("//producto") {
		code := gtin.Normalize(el.SelectAttrValue("gtin", ""))
		name := strings.TrimSpace(el.SelectAttrValue("nombre", ""))
		if err := gtin.Validate(code); err != nil {
			rejected = append(rejected, fmt.Sprintf("gtin %q: %v", code, err))
			continue
		}
		if seen[code] {
			rejected = append(rejected, fmt.Sprintf("gtin %s: repetido", code))
			continue
		}
		if name == "" {
			rejected = append(rejected, fmt.Sprintf("gtin %s: nombre vacío", code))
			continue
		}
		weight, err := decimal.NewFromString(strings.TrimSpace(el.SelectAttrValue("pesoGramos", "0")))
		if err != nil || weight.IsNegative() {
			rejected = append(rejected, fmt.Sprintf("gtin %s: peso inválido", code))
			continue
		}

		item := catalogItem{gtin: code, name: name, weightGrams: weight}
		if d := el.SelectElement("descripcion"); d != nil {
			item.description = strings.TrimSpace(d.Text())
		}
		for _, s := range el.SelectElements("stock") {
			wh, errWh := strconv.ParseInt(s.SelectAttrValue("bodega", ""), 10, 64)
			qty, errQty := strconv.Atoi(s.SelectAttrValue("cantidad", ""))
			if errWh != nil || errQty != nil || wh <= 0 || qty < 0 {
				rejected = append(rejected, fmt.Sprintf("gtin %s: stock inválido en bodega %q", code, s.SelectAttrValue("bodega", "")))
				continue
			}
			item.stock = append(item.stock, stockEntry{warehouseID: wh, quantity: qty})
		}
		seen[code] = true
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].gtin < items[j].gtin })
	return items, rejected, nil
}

// writeSQL escribe upserts idempotentes. El stock solo se inserta si la fila no existe,
// así volver a aplicar el script no pisa el stock vivo.
func writeSQL(w io.Writer, items []catalogItem) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos y stock inicial por bodega\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")

	if len(items) == 0 {
		b.WriteString("-- sin productos\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("-- 1. Productos\n")
	b.WriteString("INSERT INTO products (gtin, name, description, unit_weight_grams) VALUES\n")
	for i, it := range items {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s)", it.gtin, escapeSQL(it.name), escapeSQL(it.description), it.weightGrams.String())
		if i < len(items)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (gtin) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,\n")
	b.WriteString("  unit_weight_grams = EXCLUDED.unit_weight_grams, updated_at = now();\n\n")

	b.WriteString("-- 2. Stock inicial\n")
	for _, it := range items {
		for _, s := range it.stock {
			b.WriteString("INSERT INTO stock (product_id, warehouse_id, held)\n")
			fmt.Fprintf(&b, "SELECT id, %d, %d FROM products WHERE gtin = '%s'\n", s.warehouseID, s.quantity, it.gtin)
			b.WriteString("ON CONFLICT (product_id, warehouse_id) DO NOTHING;\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
