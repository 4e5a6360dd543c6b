package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/configs"
	"akreditasiku_backend/internals/constants"
	userModel "akreditasiku_backend/internals/features/users/model"
)

// Hak per role. super_admin memegang semuanya; viewer hanya melihat.
var rolePermissions = map[string][]string{
	"super_admin": constants.AllPermissions,
	"reviewer": {
		constants.PermViewEvidence,
		constants.PermApproveEvidence,
		constants.PermDownloadEvidence,
		constants.PermViewActivityLog,
	},
	"contributor": {
		constants.PermAddEvidence,
		constants.PermViewEvidence,
		constants.PermDownloadEvidence,
	},
	"viewer": {
		constants.PermViewEvidence,
	},
}

var roleDescriptions = map[string]string{
	"super_admin": "Admin penuh: kelola struktur akreditasi, user, dan sistem",
	"reviewer":    "Mereview dan menyetujui/menolak bukti",
	"contributor": "Mengunggah dan mengelola bukti miliknya sendiri",
	"viewer":      "Hanya melihat bukti",
}

// Run idempoten: aman dipanggil setiap startup.
func Run(db *gorm.DB) error {
	if err := seedPermissions(db); err != nil {
		return err
	}
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedAdminUser(db); err != nil {
		return err
	}
	log.Println("✅ Seed selesai")
	return nil
}

func seedPermissions(db *gorm.DB) error {
	for _, name := range constants.AllPermissions {
		perm := userModel.PermissionModel{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&perm).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedRoles(db *gorm.DB) error {
	for roleName, permNames := range rolePermissions {
		role := userModel.RoleModel{Name: roleName, Description: roleDescriptions[roleName]}
		if err := db.Where("name = ?", roleName).FirstOrCreate(&role).Error; err != nil {
			return err
		}

		var perms []userModel.PermissionModel
		if err := db.Where("name IN ?", permNames).Find(&perms).Error; err != nil {
			return err
		}
		if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return err
		}
	}
	return nil
}

// seedAdminUser membuat akun super_admin pertama bila tabel users masih kosong.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&userModel.UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var role userModel.RoleModel
	if err := db.First(&role, "name = ?", "super_admin").Error; err != nil {
		return err
	}

	password := configs.GetEnv("SEED_ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := userModel.UserModel{
		Username:     configs.GetEnv("SEED_ADMIN_USERNAME", "admin"),
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Email:        configs.GetEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		RoleID:       &role.ID,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("⚠️ Akun admin awal dibuat (username=%s) — segera ganti password!", admin.Username)
	return nil
}
