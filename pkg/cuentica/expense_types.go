package cuentica

// The API rejects the generic chart-of-accounts codes (628, 629) and only
// accepts the specific subaccounts listed here.
var expenseTypeCodes = []string{
	"600", "601", "602", "607",
	"6210001", "6210002", "6210003",
	"622",
	"6230001", "6230002", "6230005",
	"624",
	"625",
	"626",
	"627",
	"6280003", "6280004", "6280005", "6280006", "6280007",
	"6290001", "6290002", "6290003", "6290004", "6290005", "6290006",
	"6310001", "6310002",
	"6400000", "6400001",
	"6420000", "6420001",
	"475", "4720099", "520", "545", "662", "669", "678", "680", "681", "699",
}

var expenseTypeDescriptions = map[string]string{
	"600":     "Compras de productos para vender",
	"601":     "Compras de materias primas",
	"602":     "Compras de otros aprovisionamientos",
	"607":     "Trabajos realizados por otras empresas",
	"6210001": "Alquileres de locales",
	"6210002": "Alquileres de equipos",
	"6210003": "Otros alquileres",
	"622":     "Reparaciones y conservación",
	"6230001": "Asesoría fiscal y contable",
	"6230002": "Asesoría laboral",
	"6230005": "Otros servicios profesionales",
	"624":     "Transportes",
	"625":     "Primas de seguros",
	"626":     "Servicios bancarios y similares",
	"627":     "Publicidad, propaganda y relaciones públicas",
	"6280003": "Combustible",
	"6280004": "Electricidad",
	"6280005": "Agua",
	"6280006": "Teléfono y comunicaciones",
	"6280007": "Otros suministros",
	"6290001": "Material de oficina",
	"6290002": "Restauración y hostelería",
	"6290003": "Viajes y desplazamientos",
	"6290004": "Hosting y servicios web",
	"6290005": "Formación y cursos",
	"6290006": "Otros servicios externos",
	"6310001": "Impuestos municipales (IBI, tasas...)",
	"6310002": "Impuestos autonómicos",
	"6400000": "Sueldos de socios/administradores",
	"6400001": "Sueldos de empleados",
	"6420000": "Seguridad social autónomos (RETA)",
	"6420001": "Seguridad social régimen general",
	"678":     "Gastos extraordinarios",
	"680":     "Amortización del inmovilizado intangible",
	"681":     "Amortización del inmovilizado material",
	"699":     "Otros gastos financieros",
}

// ExpenseCategory groups related expense type codes.
type ExpenseCategory struct {
	Key   string
	Name  string
	Codes []string
}

var expenseCategories = []ExpenseCategory{
	{Key: "purchases", Name: "Compras", Codes: []string{"600", "601", "602", "607"}},
	{Key: "rentals", Name: "Alquileres", Codes: []string{"6210001", "6210002", "6210003"}},
	{Key: "repairs", Name: "Reparaciones", Codes: []string{"622"}},
	{Key: "professional_services", Name: "Servicios profesionales", Codes: []string{"6230001", "6230002", "6230005"}},
	{Key: "transport", Name: "Transportes", Codes: []string{"624"}},
	{Key: "insurance", Name: "Seguros", Codes: []string{"625"}},
	{Key: "banking", Name: "Servicios bancarios", Codes: []string{"626"}},
	{Key: "advertising", Name: "Publicidad", Codes: []string{"627"}},
	{Key: "utilities", Name: "Suministros", Codes: []string{"6280003", "6280004", "6280005", "6280006", "6280007"}},
	{Key: "other_services", Name: "Otros servicios", Codes: []string{"6290001", "6290002", "6290003", "6290004", "6290005", "6290006"}},
	{Key: "taxes", Name: "Impuestos", Codes: []string{"6310001", "6310002"}},
	{Key: "payroll", Name: "Nóminas", Codes: []string{"6400000", "6400001", "6420000", "6420001"}},
}

// ExpenseTypeCodes returns every expense type code the API accepts.
func ExpenseTypeCodes() []string {
	out := make([]string, len(expenseTypeCodes))
	copy(out, expenseTypeCodes)
	return out
}

// IsValidExpenseType reports whether the API accepts code.
func IsValidExpenseType(code string) bool {
	for _, c := range expenseTypeCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ExpenseTypeDescription returns the Spanish label of code, if known.
func ExpenseTypeDescription(code string) (string, bool) {
	d, ok := expenseTypeDescriptions[code]
	return d, ok
}

// ExpenseCategories returns the expense type groups in display order.
func ExpenseCategories() []ExpenseCategory {
	out := make([]ExpenseCategory, len(expenseCategories))
	copy(out, expenseCategories)
	return out
}
