package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- unmarshalRecords Tests ---

func TestUnmarshalRecords_Scalars(t *testing.T) {
	items := []map[string]types.AttributeValue{
		{
			"NRO_RUC":      &types.AttributeValueMemberS{Value: "20100047218"},
			"RAZON_SOCIAL": &types.AttributeValueMemberS{Value: "BANCO DE CREDITO DEL PERU"},
			"UBIGEO":       &types.AttributeValueMemberN{Value: "150131"},
			"ACTIVO":       &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	records, err := unmarshalRecords(items)
	if err != nil {
		t.Fatalf("unmarshalRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r["NRO_RUC"] != "20100047218" {
		t.Errorf("expected NRO_RUC '20100047218', got %v", r["NRO_RUC"])
	}
	if r["UBIGEO"] != float64(150131) {
		t.Errorf("expected UBIGEO 150131 as float64, got %#v", r["UBIGEO"])
	}
	if r["ACTIVO"] != true {
		t.Errorf("expected ACTIVO true, got %v", r["ACTIVO"])
	}
}

func TestUnmarshalRecords_Nested(t *testing.T) {
	items := []map[string]types.AttributeValue{
		{
			"DOMICILIO": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"VIA": &types.AttributeValueMemberS{Value: "AV. CENTENARIO"},
			}},
			"TELEFONOS": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: "01-3119898"},
			}},
		},
	}

	records, err := unmarshalRecords(items)
	if err != nil {
		t.Fatalf("unmarshalRecords failed: %v", err)
	}

	domicilio, ok := records[0]["DOMICILIO"].(map[string]any)
	if !ok || domicilio["VIA"] != "AV. CENTENARIO" {
		t.Errorf("expected nested map, got %#v", records[0]["DOMICILIO"])
	}
	telefonos, ok := records[0]["TELEFONOS"].([]any)
	if !ok || len(telefonos) != 1 || telefonos[0] != "01-3119898" {
		t.Errorf("expected list, got %#v", records[0]["TELEFONOS"])
	}
}

func TestUnmarshalRecords_Empty(t *testing.T) {
	records, err := unmarshalRecords(nil)
	if err != nil {
		t.Fatalf("unmarshalRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestUnmarshalRecords_PreservesOrder(t *testing.T) {
	var items []map[string]types.AttributeValue
	for _, ruc := range []string{"3", "1", "2"} {
		items = append(items, map[string]types.AttributeValue{
			"NRO_RUC": &types.AttributeValueMemberS{Value: ruc},
		})
	}

	records, err := unmarshalRecords(items)
	if err != nil {
		t.Fatalf("unmarshalRecords failed: %v", err)
	}
	for i, want := range []string{"3", "1", "2"} {
		if records[i]["NRO_RUC"] != want {
			t.Errorf("record %d: expected %q, got %v", i, want, records[i]["NRO_RUC"])
		}
	}
}

// --- Config.validate Tests ---

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected Config
	}{
		{
			name:     "empty config gets defaults",
			cfg:      Config{},
			expected: DefaultConfig(),
		},
		{
			name: "explicit values are kept",
			cfg: Config{
				TableParameter: "/prod/rucsystem/database/table-name",
				IndexParameter: "/prod/rucsystem/database/index-name",
				KeyAttribute:   "ruc",
			},
			expected: Config{
				TableParameter: "/prod/rucsystem/database/table-name",
				IndexParameter: "/prod/rucsystem/database/index-name",
				KeyAttribute:   "ruc",
			},
		},
		{
			name: "partial config is completed",
			cfg:  Config{KeyAttribute: "ruc"},
			expected: Config{
				TableParameter: "/dev/rucsystem/database/table-name",
				IndexParameter: "/dev/rucsystem/database/index-name",
				KeyAttribute:   "ruc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.validate()
			if cfg != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, cfg)
			}
		})
	}
}

// --- names Tests ---

func TestNames_PartiallyResolved(t *testing.T) {
	s := &Store{tableName: "empresas"}

	if _, _, err := s.names(); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized with only a table name, got %v", err)
	}
}
