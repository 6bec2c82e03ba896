package config

import (
	"maps"
	"slices"
)

// Reference 静态参考数据：别名修正表、员工代码表、人员名单、个人例外
type Reference struct {
	Aliases       map[string]string  `toml:"aliases"`
	EmployeeCodes map[string]string  `toml:"employee_codes"`
	Roster        []string           `toml:"roster"`
	Overrides     []EmployeeOverride `toml:"overrides"`
}

// EmployeeOverride 按员工身份生效的开销例外
type EmployeeOverride struct {
	Name              string   `toml:"name"`
	ChatMinutesPerDay *float64 `toml:"chat_minutes_per_day,omitempty"`
	HoursDelta        float64  `toml:"hours_delta"`
}

const (
	brenda    = "BRENDA OLGUIN QUIROZ"
	stephanie = "STEPHANIE CIFUENTES LUENGO"
)

// DefaultReference 默认参考数据
func DefaultReference() Reference {
	brendaChat := 90.0

	return Reference{
		Aliases: map[string]string{
			"1. SOLICITUDES NIVEL 2":                                             "SOLICITUDES NIVEL 2",
			"ACLARACIONES DE CARGOS ABONOS":                                      "ACLARACIONES DE CARGOS Y ABONOS",
			"CERTIFICADO DE SALDO":                                               "CERTIFICADO DE SALDOS",
			"CONDONACION DE GASTOS":                                              "CONDONACIÓN DE GASTOS",
			"ENTREGA DE PAGARES ABOGADO ASIGNADO":                                "ENTREGA DE PAGARÉS ABOGADO ASIGNADO",
			"INICIO - TERMINO DE DÍA CONTABLE":                                   "INICIO - TÉRMINO DE DÍA CONTABLE",
			"SIMULACIÓN DE CRÉDITOS":                                             "SIMULACIÓN DE CRÉDITO",
			"PAGO DE HONORARIOS":                                                 "PAGO HONORARIOS",
			"SOLICITUD EMISIÓN DE PAGARÉ":                                        "SOLICITUD EMISIÓN PAGARÉ",
			"APLICACIÓN DE REMATE, DACIÓN EN PAGO O CONSIGNACIONES":              "APLICACIÓN DE REMATE, DACIÓN EN PAGO O CONSIGNAC",
			"EMISIÓN DE VALE VISTA VIRTUAL O ABONO A CUENTA BCI U OTRO BANCO":    "EMISIÓN DE VALE VISTA VIRTUAL O ABONO A CUENTA BCI",
			"ANB EMISIÓN DE VALE VISTA VIRTUAL O ABONO A CUENTA BCI U OTRO BANCO": "EMISIÓN DE VALE VISTA VIRTUAL O ABONO A CUENTA BCI",
			"FOGAPE: CURSES PRORROGAS , MODIFICACIONES Y SEGUIMIENTO":            "FOGAPE: CURSES PRÓRROGAS, MODIFICACIONES Y SEGUI",
			"PROCESO LIR - CONDONACIÓN POR SENTENCIA DE TÉRMINO":                 "PROCESO LIR - CONDONACIÓN POR SENTENCIA DE TÉRMI",
			"TRASLADO DE PAGARES":                                                "RECEPCIÓN PAGARÉS OFICINA",
			"INICIO DE DÍA CONTABLE":                                             "INICIO - TÉRMINO DE DÍA CONTABLE",
		},
		EmployeeCodes: map[string]string{
			"JACUNVE": "JESSICA ACUNA VELASQUEZ",
			"AMATUSD": "ALEJANDRA MATUS DURAN",
			"DCARRAH": "DIANA CARRASCO HERRERA",
			"CGALAZ":  "CLEMENTINA GALAZ MATTA",
			"BOLGUIQ": brenda,
			"SCIFUEN": stephanie,
			"KARINNA": "KARINNA ALVAREZ MORALES",
		},
		Roster: []string{
			"JESSICA ACUNA VELASQUEZ",
			"ALEJANDRA MATUS DURAN",
			"DIANA CARRASCO HERRERA",
			"CLEMENTINA GALAZ MATTA",
			brenda,
			stephanie,
			"KARINNA ALVAREZ MORALES",
		},
		Overrides: []EmployeeOverride{
			{Name: brenda, ChatMinutesPerDay: &brendaChat},
			{Name: stephanie, HoursDelta: -1},
		},
	}
}

// Clone 深拷贝，注入到各组件后互不影响
func (r Reference) Clone() Reference {
	out := Reference{
		Aliases:       maps.Clone(r.Aliases),
		EmployeeCodes: maps.Clone(r.EmployeeCodes),
		Roster:        slices.Clone(r.Roster),
		Overrides:     make([]EmployeeOverride, 0, len(r.Overrides)),
	}
	for _, o := range r.Overrides {
		if o.ChatMinutesPerDay != nil {
			v := *o.ChatMinutesPerDay
			o.ChatMinutesPerDay = &v
		}
		out.Overrides = append(out.Overrides, o)
	}
	return out
}
