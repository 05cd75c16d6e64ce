package main

import (
	"context"
	"log"
	"time"

	"bot-commander.backend/internal/config"
	"bot-commander.backend/internal/domain/entities"
	"bot-commander.backend/internal/domain/repositories"
	"bot-commander.backend/pkg/crypto"
)

// ensureAdminUser creates the bootstrap admin account from ADMIN_EMAIL
// and ADMIN_PASSWORD when no admin exists yet. A fresh deployment is
// unusable otherwise, since only admins can create users.
func ensureAdminUser(ctx context.Context, cfg *config.Config, userRepo repositories.UserRepository, loginRepo repositories.LoginRepository, uow repositories.UnitOfWork) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	exists, err := userRepo.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	passwordHash, err := crypto.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	user := &entities.User{
		Email:     cfg.Admin.Email,
		Name:      cfg.Admin.Name,
		IsAdmin:   true,
		CreatedOn: time.Now(),
	}

	err = uow.Do(ctx, func(txCtx context.Context) error {
		if err := userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return loginRepo.Create(txCtx, &entities.Login{
			UserID:   user.UserID,
			Password: passwordHash,
			IsActive: true,
		})
	})
	if err != nil {
		return err
	}

	log.Printf("Bootstrap admin user created: %s", cfg.Admin.Email)
	return nil
}
