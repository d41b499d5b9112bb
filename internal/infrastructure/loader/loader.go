package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/xid"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
	"quotewise/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Loader разбирает файлы с котировками (CSV или JSON) в доменные сущности.
// Заголовки и ключи приводятся к каноническим именам через таблицу синонимов.
type Loader struct {
	aliases value.AliasTable
}

func New(aliases value.AliasTable) Loader {
	return Loader{aliases: aliases.WithRecordAliases()}
}

// LoadFile выбирает парсер по расширению файла.
func (l Loader) LoadFile(path string) ([]entity.Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.UnsupportedFormat, "open quote file")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return l.ParseCSV(f)
	case ".json":
		return l.ParseJSON(f)
	default:
		return nil, domain.NewError(errcodes.UnsupportedFormat,
			fmt.Sprintf("unsupported quote file extension %q", filepath.Ext(path)))
	}
}

// ParseJSON принимает массив плоских объектов: строковые поля трактуются как
// провайдер/идентификатор, числовые — как атрибуты. Вложенный объект units
// задаёт единицы измерения атрибутов.
func (l Loader) ParseJSON(r io.Reader) ([]entity.Quote, error) {
	var records []map[string]any
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, domain.WrapError(err, errcodes.UnsupportedFormat, "decode quote json")
	}

	quotes := make([]entity.Quote, 0, len(records))

	for _, record := range records {
		quote, err := l.fromRecord(record)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// ParseCSV принимает таблицу с заголовком; каждая строка — одна котировка.
func (l Loader) ParseCSV(r io.Reader) ([]entity.Quote, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.UnsupportedFormat, "read quote csv")
	}

	if len(rows) < 2 { //nolint:mnd
		return nil, domain.NewError(errcodes.UnsupportedFormat, "quote csv has no data rows")
	}

	header := rows[0]
	quotes := make([]entity.Quote, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record := make(map[string]any, len(header))

		for i, cell := range row {
			if i >= len(header) {
				break
			}

			record[header[i]] = cell
		}

		quote, err := l.fromRecord(record)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

func (l Loader) fromRecord(record map[string]any) (entity.Quote, error) {
	quote := entity.Quote{
		Attributes: map[string]float64{},
		Units:      map[string]string{},
		CreatedAt:  time.Now().UTC(),
	}

	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Коллизия синонимов на одном каноническом имени: точное имя
	// побеждает синоним, среди синонимов — первый по алфавиту.
	exact := make(map[string]bool, len(record))

	for _, key := range keys {
		canonical, aliased := l.aliases.Resolve(key)

		if canonical == "units" {
			applyUnits(&quote, record[key])

			continue
		}

		if wasExact, ok := exact[canonical]; ok && (wasExact || aliased) {
			continue
		}

		applied := false

		switch v := record[key].(type) {
		case float64:
			quote.Attributes[canonical] = v
			applied = true
		case string:
			applied = applyString(&quote, canonical, v)
		}

		if applied {
			exact[canonical] = !aliased
		}
	}

	if quote.ID == "" {
		quote.ID = xid.New().String()
	}

	if quote.Provider == "" {
		quote.Provider = quote.ID
	}

	if len(quote.Attributes) == 0 {
		return entity.Quote{}, domain.NewError(errcodes.MalformedQuote,
			fmt.Sprintf("quote %q has no numeric attributes", quote.ID))
	}

	rawJSON, err := json.Marshal(record)
	if err != nil {
		return entity.Quote{}, domain.WrapError(err, errcodes.UnsupportedFormat, "marshal raw quote")
	}

	quote.Raw = rawJSON

	return quote, nil
}

func applyUnits(quote *entity.Quote, raw any) {
	units, ok := raw.(map[string]any)
	if !ok {
		return
	}

	for attr, unit := range units {
		if s, ok := unit.(string); ok {
			quote.Units[attr] = s
		}
	}
}

func applyString(quote *entity.Quote, canonical, v string) bool {
	switch canonical {
	case "id":
		quote.ID = strings.TrimSpace(v)
	case "provider":
		quote.Provider = strings.TrimSpace(v)
	default:
		number, ok := safeFloat(v)
		if !ok {
			return false
		}

		quote.Attributes[canonical] = number
	}

	return true
}

// safeFloat терпимо относится к "грязным" числам из выгрузок:
// "1,200.50", "$99", "4.5 stars" разбираются в число.
func safeFloat(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, strings.ReplaceAll(s, ",", ""))

	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, false
	}

	number, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	return number, true
}
