package policy

import (
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

// Catalog holds the canned change reasons offered to each role per target
// status. The catalog populates UI pickers only: the lifecycle accepts any
// non-empty reason string, listed or not.
type Catalog map[types.Role]map[types.CaseStatus][]string

// DefaultCatalog returns the built-in reason catalog. The wording matches
// the Spanish-language product the service fronts.
func DefaultCatalog() Catalog {
	return Catalog{
		types.RoleClinician: {
			types.CaseStatusResolved: {
				"Caso resuelto por médico de cabecera",
				"Respuesta recibida y aplicada",
				"El paciente fue derivado a atención presencial",
			},
			types.CaseStatusCancelled: {
				"Caso duplicado",
				"Consulta enviada por error",
				"El paciente ya no requiere la consulta",
			},
		},
		types.RoleExpert: {
			types.CaseStatusResolved: {
				"Diagnóstico confirmado y recomendaciones dadas",
				"Consulta respondida con plan de manejo",
				"Estudios sugeridos y seguimiento indicado",
			},
			types.CaseStatusCancelled: {
				"Caso duplicado",
				"Información insuficiente para evaluar",
				"Fuera del alcance de la especialidad",
			},
			types.CaseStatusInReview: {
				"Nueva información clínica disponible",
				"Evolución desfavorable del paciente",
				"Revisión adicional solicitada",
			},
		},
	}
}

// Reasons returns the canned reasons for a (role, target) pair, ordered as
// configured. The returned slice is a copy; an unknown pair yields an
// empty list.
func (c Catalog) Reasons(role types.Role, target types.CaseStatus) []string {
	reasons := c[role][target]
	out := make([]string, len(reasons))
	copy(out, reasons)
	return out
}

// Set replaces the reason list for a (role, target) pair
func (c Catalog) Set(role types.Role, target types.CaseStatus, reasons []string) {
	if c[role] == nil {
		c[role] = make(map[types.CaseStatus][]string)
	}
	list := make([]string, len(reasons))
	copy(list, reasons)
	c[role][target] = list
}
