package constants

import "fmt"

// Nama permission (string capability, disimpan di tabel permissions)
const (
	PermAddProgram    = "add_program"
	PermEditProgram   = "edit_program"
	PermDeleteProgram = "delete_program"

	PermAddAreaLevel    = "add_area_level"
	PermEditAreaLevel   = "edit_area_level"
	PermDeleteAreaLevel = "delete_area_level"

	PermAddParameter    = "add_parameter"
	PermEditParameter   = "edit_parameter"
	PermDeleteParameter = "delete_parameter"

	PermAddSubParameter    = "add_sub_parameter"
	PermEditSubParameter   = "edit_sub_parameter"
	PermDeleteSubParameter = "delete_sub_parameter"

	PermAddEvidence      = "add_evidence"
	PermEditEvidence     = "edit_evidence"
	PermDeleteEvidence   = "delete_evidence"
	PermViewEvidence     = "view_evidence"
	PermApproveEvidence  = "approve_evidence"
	PermDownloadEvidence = "download_evidence"

	PermViewActivityLog = "view_activity_log"
	PermManageSettings  = "manage_settings"
	PermManageBackup    = "manage_backup"
	PermManageUsers     = "manage_users"
)

// Template pesan error permission
const ErrMissingPermission = "❌ Anda tidak memiliki izin %s untuk fitur ini."

func PermissionError(perm string) string {
	return fmt.Sprintf(ErrMissingPermission, perm)
}

// ==========================
// ✅ Grouped Permission Slices
// ==========================
var (
	ProgramPermissions = []string{
		PermAddProgram, PermEditProgram, PermDeleteProgram,
	}

	AreaLevelPermissions = []string{
		PermAddAreaLevel, PermEditAreaLevel, PermDeleteAreaLevel,
	}

	ParameterPermissions = []string{
		PermAddParameter, PermEditParameter, PermDeleteParameter,
		PermAddSubParameter, PermEditSubParameter, PermDeleteSubParameter,
	}

	EvidencePermissions = []string{
		PermAddEvidence, PermEditEvidence, PermDeleteEvidence,
		PermViewEvidence, PermApproveEvidence, PermDownloadEvidence,
	}

	AdminPermissions = []string{
		PermViewActivityLog, PermManageSettings, PermManageBackup, PermManageUsers,
	}

	AllPermissions = concat(
		ProgramPermissions,
		AreaLevelPermissions,
		ParameterPermissions,
		EvidencePermissions,
		AdminPermissions,
	)
)

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
