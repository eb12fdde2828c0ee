// Package seed carga documentos iniciales en el store desde un archivo o URL.
// Formatos: arreglo JSON, NDJSON (mongoexport) y CSV con encabezado.
package seed

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mg "shelter-dashboard/internal/adapters/storage/mongo"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/httpclient"
	"shelter-dashboard/internal/platform/logger"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatCSV    Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown seed format")

// ParseFormat valida el nombre de un formato. "" o "auto" => detección.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "auto":
		return "", nil
	case FormatJSON, FormatNDJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// MaxDownload limita el tamaño de un seed remoto.
const MaxDownload = 64 << 20

// Importer es lo que necesita Run del servicio de animales.
type Importer interface {
	Import(ctx context.Context, docs []animals.Record) (int, error)
}

// Run carga src y lo importa. Devuelve la cantidad de documentos creados.
// format vacío => se detecta.
func Run(ctx context.Context, imp Importer, src string, format Format, client *httpclient.Client, log logger.Logger) (int, error) {
	if log == nil {
		log = logger.Nop()
	}

	docs, err := LoadFormat(ctx, src, format, client)
	if err != nil {
		return 0, err
	}
	log.Info("seed loaded", map[string]any{"source": src, "docs": len(docs)})

	n, err := imp.Import(ctx, docs)
	if err != nil {
		return n, fmt.Errorf("seed import: %w", err)
	}
	return n, nil
}

// LoadFormat lee src (archivo local o URL http/https) y lo parsea.
// format vacío => se detecta por extensión, content-type o contenido.
func LoadFormat(ctx context.Context, src string, format Format, client *httpclient.Client) ([]animals.Record, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errors.New("seed: empty source")
	}

	var (
		data        []byte
		contentType string
		err         error
	)
	if httpclient.IsURL(src) {
		if client == nil {
			client = httpclient.New(0)
		}
		if client.MaxBody == 0 {
			client.MaxBody = MaxDownload
		}
		data, contentType, err = client.Get(ctx, src, "application/json, application/x-ndjson, text/csv")
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", src, err)
	}

	if format == "" {
		format = DetectFormat(src, contentType, data)
	}
	return Parse(data, format)
}

// DetectFormat decide por extensión, luego por content-type y por último por contenido.
func DetectFormat(name, contentType string, data []byte) Format {
	name = strings.ToLower(name)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch filepath.Ext(name) {
	case ".csv":
		return FormatCSV
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".json":
		if firstByte(data) == '[' {
			return FormatJSON
		}
		return FormatNDJSON
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "csv"):
		return FormatCSV
	case strings.Contains(ct, "ndjson"):
		return FormatNDJSON
	}

	switch firstByte(data) {
	case '[':
		return FormatJSON
	case '{':
		return FormatNDJSON
	default:
		return FormatCSV
	}
}

func firstByte(data []byte) byte {
	t := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(t) == 0 {
		return 0
	}
	return t[0]
}

// Parse convierte data en documentos.
func Parse(data []byte, f Format) ([]animals.Record, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	switch f {
	case FormatJSON:
		return parseJSONArray(data)
	case FormatNDJSON:
		return parseNDJSON(data)
	case FormatCSV:
		return parseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func parseJSONArray(data []byte) ([]animals.Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("seed: json array: %w", err)
	}

	out := make([]animals.Record, 0, len(items))
	for i, raw := range items {
		doc, err := mg.DecodeExtJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("seed: item %d: %w", i, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func parseNDJSON(data []byte) ([]animals.Record, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)

	out := make([]animals.Record, 0)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		doc, err := mg.DecodeExtJSON(b)
		if err != nil {
			return nil, fmt.Errorf("seed: line %d: %w", line, err)
		}
		out = append(out, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("seed: ndjson: %w", err)
	}
	return out, nil
}

// parseCSV sigue a mongoimport --headerline: números se guardan como número,
// celdas vacías como null. Columnas sin nombre (índice exportado) se ignoran.
func parseCSV(data []byte) ([]animals.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []animals.Record{}, nil
		}
		return nil, fmt.Errorf("seed: csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	out := make([]animals.Record, 0)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("seed: csv: %w", err)
		}

		doc := make(animals.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i >= len(row) {
				doc[col] = nil
				continue
			}
			doc[col] = csvValue(row[i])
		}
		out = append(out, doc)
	}
	return out, nil
}

func csvValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
