package value

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// AliasTable таблица синонимов имён атрибутов. Инъектируется как
// конфигурация: глобального изменяемого состояния здесь нет, тесты
// подставляют свои схемы.
type AliasTable struct {
	aliases map[string]string
}

func NewAliasTable(aliases map[string]string) AliasTable {
	normalized := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		normalized[normalizeKey(alias)] = canonical
	}

	return AliasTable{aliases: normalized}
}

// DefaultAliasTable синонимы числовых атрибутов из типовых выгрузок
// страховых котировок. Синонимы строковых полей записи (plan -> provider)
// сюда не входят: см. WithRecordAliases.
func DefaultAliasTable() AliasTable {
	return NewAliasTable(map[string]string{
		"cost":            "price",
		"premium":         "price",
		"annual_premium":  "price",
		"coin":            "coinsurance",
		"oop_max":         "out_of_pocket_max",
		"sum_insured":     "coverage_limit",
		"network":         "network_size",
		"coverage":        "coverage_months",
		"coverage_period": "coverage_months",
		"stars":           "rating",
		"score":           "rating",
	})
}

// LoadAliasTable читает таблицу синонимов из JSON-файла
// (объект alias -> canonical) и накладывает её поверх дефолтной.
func LoadAliasTable(path string) (AliasTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AliasTable{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var overrides map[string]string
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return AliasTable{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	table := DefaultAliasTable()
	for alias, canonical := range overrides {
		table.aliases[normalizeKey(alias)] = canonical
	}

	return table, nil
}

// WithRecordAliases расширяет таблицу синонимами строковых полей записи.
// Нужна только загрузчику файлов: в числовой карте атрибутов поле "name"
// не должно превращаться в скоринговый атрибут "provider".
func (t AliasTable) WithRecordAliases() AliasTable {
	merged := make(map[string]string, len(t.aliases)+3) //nolint:mnd
	for alias, canonical := range t.aliases {
		merged[alias] = canonical
	}

	merged["plan"] = "provider"
	merged["name"] = "provider"
	merged["plan_name"] = "provider"

	return AliasTable{aliases: merged}
}

// Canonical возвращает каноническое имя атрибута.
func (t AliasTable) Canonical(name string) string {
	canonical, _ := t.Resolve(name)
	return canonical
}

// Resolve возвращает каноническое имя и признак, что исходное имя было
// синонимом, а не самим каноническим именем.
func (t AliasTable) Resolve(name string) (string, bool) {
	key := normalizeKey(name)
	if canonical, ok := t.aliases[key]; ok {
		return canonical, true
	}

	return key, false
}

// normalizeKey: "Coverage Months" и "coverage-months" — это один ключ.
func normalizeKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")

	return strings.ReplaceAll(key, "-", "_")
}
