package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const catalogoXML = `<?xml version="1.0" encoding="UTF-8"?>
<catalogo>
  <producto gtin="4006381333931" nombre="Cemento 50kg" pesoGramos="50000">
    <descripcion>Bulto gris</descripcion>
    <stock bodega="1" cantidad="120"/>
    <stock bodega="2" cantidad="40"/>
  </producto>
  <producto gtin="0360-0029-1452" nombre="Arena d'río" pesoGramos="1250.5"/>
  <producto gtin="4006381333932" nombre="Dígito malo" pesoGramos="10"/>
  <producto gtin="4006381333931" nombre="Repetido" pesoGramos="10"/>
  <producto gtin="96385074" nombre="Negativo" pesoGramos="-1"/>
</catalogo>`

func TestParseCatalog_FiltraYOrdena(t *testing.T) {
	items, rejected, err := parseCatalog(strings.NewReader(catalogoXML))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "036000291452", items[0].gtin)
	assert.Equal(t, "Arena d'río", items[0].name)
	assert.Equal(t, "1250.5", items[0].weightGrams.String())
	assert.Empty(t, items[0].stock)

	assert.Equal(t, "4006381333931", items[1].gtin)
	assert.Equal(t, "Bulto gris", items[1].description)
	assert.Equal(t, []stockEntry{{warehouseID: 1, quantity: 120}, {warehouseID: 2, quantity: 40}}, items[1].stock)

	assert.Len(t, rejected, 3)
}

func TestParseCatalog_ISO88591(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?><catalogo><producto gtin="96385074" nombre="Tubería PVC" pesoGramos="800"/></catalogo>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	items, _, err := parseCatalog(strings.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tubería PVC", items[0].name)
}

func TestParseCatalog_XMLInvalido(t *testing.T) {
	_, _, err := parseCatalog(strings.NewReader("<catalogo><producto"))
	assert.Error(t, err)
}

func TestWriteSQL_Idempotente(t *testing.T) {
	items, _, err := parseCatalog(strings.NewReader(catalogoXML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, items))
	sql := buf.String()

	assert.Contains(t, sql, "('036000291452', 'Arena d''río', '', 1250.5),")
	assert.Contains(t, sql, "('4006381333931', 'Cemento 50kg', 'Bulto gris', 50000)\n")
	assert.Contains(t, sql, "ON CONFLICT (gtin) DO UPDATE")
	assert.Contains(t, sql, "SELECT id, 2, 40 FROM products WHERE gtin = '4006381333931'")
	assert.Equal(t, 2, strings.Count(sql, "ON CONFLICT (product_id, warehouse_id) DO NOTHING;"))
}

func TestWriteSQL_SinProductos(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, nil))
	assert.NotContains(t, buf.String(), "INSERT")
}
