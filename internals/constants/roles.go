package constants

import "fmt"

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess     = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyEvaluatorsCanAccess = "❌ Hanya reviewer atau juri yang boleh mengakses fitur %s."
	ErrOnlyTeamsCanAccess      = "❌ Hanya tim pengusul yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorEvaluator(feature string) string {
	return fmt.Sprintf(ErrOnlyEvaluatorsCanAccess, feature)
}

func RoleErrorTeam(feature string) string {
	return fmt.Sprintf(ErrOnlyTeamsCanAccess, feature)
}

// ==========================
// ✅ Role slices
// ==========================
const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
	RoleJuri     = "juri"
	RoleTeam     = "team"
	RoleMentor   = "mentor"
)

var (
	AllRoles       = []string{RoleAdmin, RoleReviewer, RoleJuri, RoleTeam, RoleMentor}
	EvaluatorRoles = []string{RoleReviewer, RoleJuri}
	AdminOnly      = []string{RoleAdmin}
)
