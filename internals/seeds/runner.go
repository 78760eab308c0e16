package seeds

import (
	"context"
	"log"

	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	users "sekolahku_backend/internals/seeds/users/auth"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB) {
	//* Users
	if err := users.SeedAdminFromEnv(ctx, db); err != nil {
		log.Printf("⚠️ Seed admin: %v", err)
	}
	if path := configs.GetEnv("SEED_USERS_FILE"); path != "" {
		if err := users.SeedUsersFromJSON(db, path); err != nil {
			log.Printf("⚠️ Seed users: %v", err)
		}
	}
}
