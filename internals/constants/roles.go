package constants

import "fmt"

const (
	RoleCandidate = "candidate"
	RoleCompany   = "company"
	RoleAdmin     = "admin"

	// RoleSystem is never carried by a token; it is the actor recorded on
	// status-history entries written by cross-entity cascades.
	RoleSystem = "system"
)

// Role error message templates
const (
	ErrOnlyCompaniesCanAccess  = "❌ Only company accounts may access %s."
	ErrOnlyCandidatesCanAccess = "❌ Only candidate accounts may access %s."
	ErrOnlyAdminsCanAccess     = "❌ Only admins may access %s."
)

func RoleErrorCompany(feature string) string {
	return fmt.Sprintf(ErrOnlyCompaniesCanAccess, feature)
}

func RoleErrorCandidate(feature string) string {
	return fmt.Sprintf(ErrOnlyCandidatesCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleCandidate,
		RoleCompany,
		RoleAdmin,
	}

	CompanyAndAdmin = []string{
		RoleCompany,
		RoleAdmin,
	}

	CandidateAndAdmin = []string{
		RoleCandidate,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
